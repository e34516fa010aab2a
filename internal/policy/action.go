package policy

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// PositiveThreshold is the minimum confidence for a positive label to earn a coupon
	PositiveThreshold = 0.70

	// NegativeThreshold is the maximum confidence for a negative label to earn a refund
	NegativeThreshold = 0.30

	// RefundPercent is the refund offered on negative feedback
	RefundPercent = 15.0

	// CouponValidDays is how long a free coupon stays valid
	CouponValidDays = 30

	couponPrefix = "MEAL-"
)

// Action is the service response to a piece of feedback
type Action string

const (
	ActionCoupon Action = "COUPON_FREE"
	ActionRefund Action = "REFUND_15"
	ActionNone   Action = "NONE"
)

// Sentiment labels
const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
)

// numericLabels maps class indices emitted by some classifiers
var numericLabels = map[string]string{
	"0": LabelNegative,
	"1": LabelNeutral,
	"2": LabelPositive,
}

var (
	// ErrInvalidConfidence is returned for confidences outside [0, 1]
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrInvalidAmount is returned for negative or non-finite refund inputs
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
)

// Decision is the outcome of DecideAction
type Decision struct {
	Action     Action  `json:"action"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// NormalizeLabel lowercases a label and maps numeric class indices to names
func NormalizeLabel(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if mapped, ok := numericLabels[l]; ok {
		return mapped
	}
	return l
}

// DecideAction picks the action for a sentiment label and its confidence.
// Unknown labels never trigger an action.
func DecideAction(label string, confidence float64) (Decision, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return Decision{}, fmt.Errorf("%w: got %v", ErrInvalidConfidence, confidence)
	}

	l := NormalizeLabel(label)
	d := Decision{Label: l, Confidence: confidence, Action: ActionNone}

	switch {
	case l == LabelNegative && confidence <= NegativeThreshold:
		d.Action = ActionRefund
		d.Message = fmt.Sprintf("Negative (%.2f). We're sorry, offering a %.0f%% refund.", confidence, RefundPercent)
	case l == LabelPositive && confidence >= PositiveThreshold:
		d.Action = ActionCoupon
		d.Message = fmt.Sprintf("Positive (%.2f). Thanks! Enjoy a free coupon.", confidence)
	default:
		d.Message = fmt.Sprintf("%s (%.2f).", capitalize(l), confidence)
	}
	return d, nil
}

// Coupon is a single-use meal voucher
type Coupon struct {
	Code       string `json:"code"`
	Expires    string `json:"expires"`
	PercentOff int    `json:"percent_off"`
}

// NewCoupon issues a free meal coupon valid for days from now (UTC date).
// A non-positive days uses CouponValidDays.
func NewCoupon(now time.Time, days int) Coupon {
	if days <= 0 {
		days = CouponValidDays
	}
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Coupon{
		Code:       couponPrefix + strings.ToUpper(hex[:8]),
		Expires:    now.UTC().AddDate(0, 0, days).Format(time.DateOnly),
		PercentOff: 100,
	}
}

// Refund is the amount returned to a guest
type Refund struct {
	Percent float64 `json:"refund_percent"`
	Amount  float64 `json:"refund_amount"`
}

// CalcRefund computes percent of amount rounded to cents
func CalcRefund(amount, percent float64) (Refund, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Refund{}, fmt.Errorf("%w: amount %v", ErrInvalidAmount, amount)
	}
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return Refund{}, fmt.Errorf("%w: percent %v", ErrInvalidAmount, percent)
	}
	return Refund{
		Percent: percent,
		Amount:  math.Round(amount*percent) / 100,
	}, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Outcome is a decision together with the voucher or refund it grants
type Outcome struct {
	Decision
	Coupon *Coupon `json:"coupon,omitempty"`
	Refund *Refund `json:"refund,omitempty"`
}

// Resolve decides the action and issues its coupon or refund.
// A refund is computed only when amount is positive.
func Resolve(label string, confidence, amount float64, now time.Time) (Outcome, error) {
	if math.IsNaN(amount) || amount < 0 {
		return Outcome{}, fmt.Errorf("%w: amount %v", ErrInvalidAmount, amount)
	}

	d, err := DecideAction(label, confidence)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Decision: d}
	switch d.Action {
	case ActionCoupon:
		c := NewCoupon(now, CouponValidDays)
		out.Coupon = &c
	case ActionRefund:
		if amount > 0 {
			r, err := CalcRefund(amount, RefundPercent)
			if err != nil {
				return Outcome{}, err
			}
			out.Refund = &r
		}
	}
	return out, nil
}
