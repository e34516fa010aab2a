package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

const hotelYAML = `db_version: "1.2.0"
faq:
  - question: What time is check-in?
    answer: Check-in starts at 3 PM.
  - question: Is there parking?
    answer: Free parking is available on site.
rooms:
  - room_type: Single
  - room_type: Double
    price_per_night: 120
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// keep the environment from enabling remote providers
	for _, key := range []string{"JINA_API_KEY", "OPENAI_API_KEY", "FAQ_EMBEDDING_PROVIDER", "FAQ_KNOWLEDGE_PATH"} {
		t.Setenv(key, "")
	}
	color.NoColor = true

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func knowledgeFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(hotelYAML), 0o644))
	return path
}

func TestAskFound(t *testing.T) {
	out, err := runCLI(t, "ask", "-k", knowledgeFile(t), "--log-level", "disabled", "what", "time", "is", "check-in?")
	require.NoError(t, err)
	assert.Contains(t, out, "Check-in starts at 3 PM.")
	assert.Contains(t, out, "matched")
}

func TestAskRoomRuleJSON(t *testing.T) {
	out, err := runCLI(t, "ask", "-k", knowledgeFile(t), "--log-level", "disabled", "--json", "king room")
	require.NoError(t, err)

	var res types.AnswerResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Found)
	assert.Equal(t, types.KindRule, res.Kind)
	assert.Contains(t, res.Answer, "Single, Double")
}

func TestAskMiss(t *testing.T) {
	out, err := runCLI(t, "ask", "-k", knowledgeFile(t), "--log-level", "disabled", "-t", "0.99", "zebra xylophone")
	require.NoError(t, err)
	assert.Contains(t, out, "No confident answer")
}

func TestAskMissingKnowledge(t *testing.T) {
	_, err := runCLI(t, "ask", "-k", filepath.Join(t.TempDir(), "missing.json"), "--log-level", "disabled", "hello")
	assert.ErrorContains(t, err, "load knowledge")
}

func TestAskRequiresQuestion(t *testing.T) {
	_, err := runCLI(t, "ask", "-k", knowledgeFile(t))
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	out, err := runCLI(t, "inspect", "-k", knowledgeFile(t), "--log-level", "disabled", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend:")
	assert.Contains(t, out, "DB version: 1.2.0")
	assert.Contains(t, out, "Room types: [Single Double]")
	assert.Contains(t, out, "What time is check-in?")
	assert.Contains(t, out, "skipped dense")
}

func TestInspectLimit(t *testing.T) {
	out, err := runCLI(t, "inspect", "-k", knowledgeFile(t), "--log-level", "disabled", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "3 more")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
	assert.Contains(t, out, "SQLite Driver:")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	long := preview(string(bytes.Repeat([]byte("a"), 100)))
	assert.Len(t, []rune(long), answerPreview)
}
