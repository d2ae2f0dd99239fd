package importer

import (
	"regexp"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// FallbackPayee is returned when no heuristic yields a usable counterparty.
const FallbackPayee = "Other Transaction"

// payeeRule tries to extract a counterparty label from a narration. Rules
// are pure and evaluated in fixed priority order; the first usable candidate
// wins even if a later rule would also match.
type payeeRule func(narration string, bank model.Bank) (string, bool)

var payeeRules = []payeeRule{
	bankAccountRule,
	interBankRule,
	upiRule,
	hdfcUPIDashRule,
	sbiTransferRule,
}

// ExtractPayee derives a human-readable counterparty label from a free-text
// bank narration. Always returns a non-empty string.
func ExtractPayee(narration string, bank model.Bank) string {
	clean := strings.TrimSpace(narration)
	for _, rule := range payeeRules {
		if payee, ok := rule(clean, bank); ok {
			return payee
		}
	}
	return genericPayee(clean)
}

// bankAccountRule handles "BANK ACC" transfer narrations: the segment after
// the "BANK ACC" marker names the counterparty account.
func bankAccountRule(narration string, _ model.Bank) (string, bool) {
	upper := strings.ToUpper(narration)
	if !strings.Contains(upper, "BANK ACC") {
		return "", false
	}

	segments := strings.Split(narration, "/")
	for i := 0; i < len(segments)-1; i++ {
		if strings.EqualFold(strings.TrimSpace(segments[i]), "BANK ACC") {
			return "Bank Acc - " + strings.TrimSpace(segments[i+1]), true
		}
	}

	// Not "/"-delimited: look for a standalone ACC token instead.
	words := strings.Split(narration, " ")
	for i := 0; i < len(words)-1; i++ {
		if strings.EqualFold(words[i], "ACC") {
			return "Bank Acc - " + strings.TrimSpace(words[i+1]), true
		}
	}
	return "", false
}

// interBankRule handles NEFT/IMPS/RTGS narrations, which carry the
// counterparty as the third "-"-delimited segment: TYPE-REFERENCE-NAME-...
func interBankRule(narration string, _ model.Bank) (string, bool) {
	upper := strings.ToUpper(narration)
	if !strings.Contains(upper, "NEFT CR") && !strings.Contains(upper, "NEFT DR") &&
		!strings.Contains(upper, "IMPS") && !strings.Contains(upper, "RTGS") {
		return "", false
	}

	parts := strings.Split(narration, "-")
	if len(parts) >= 3 {
		if name := strings.TrimSpace(parts[2]); len(name) > 2 {
			return name, true
		}
	}
	return "", false
}

// upiRule handles "UPI/"-style narrations. SBI puts the counterparty in the
// last "/"-delimited segment; other banks use the fourth.
func upiRule(narration string, bank model.Bank) (string, bool) {
	if !strings.Contains(strings.ToUpper(narration), "UPI/") {
		return "", false
	}

	segments := strings.Split(narration, "/")
	if bank == model.BankSBI {
		if last := strings.TrimSpace(segments[len(segments)-1]); last != "" {
			return last, true
		}
		return "", false
	}
	if len(segments) > 3 {
		if name := strings.TrimSpace(segments[3]); len(name) > 1 {
			return name, true
		}
	}
	return "", false
}

// hdfcUPIDashRule handles HDFC's "UPI-NAME-..." narration form.
func hdfcUPIDashRule(narration string, bank model.Bank) (string, bool) {
	if bank != model.BankHDFC || !strings.HasPrefix(strings.ToUpper(narration), "UPI-") {
		return "", false
	}
	parts := strings.Split(narration, "-")
	if len(parts) > 1 {
		if name := strings.TrimSpace(parts[1]); len(name) > 1 {
			return name, true
		}
	}
	return "", false
}

var transferPhrase = regexp.MustCompile(`(?i)Transfer (?:to|from) (.*?) -`)

// sbiTransferRule handles SBI "Transfer to/from NAME -" narrations, falling
// back to the tokens after the transfer phrase when the dash is missing.
func sbiTransferRule(narration string, bank model.Bank) (string, bool) {
	if bank != model.BankSBI {
		return "", false
	}
	upper := strings.ToUpper(narration)
	if !strings.HasPrefix(upper, "TRANSFER TO") && !strings.HasPrefix(upper, "TRANSFER FROM") {
		return "", false
	}

	if m := transferPhrase.FindStringSubmatch(narration); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name, true
		}
	}

	words := strings.Split(narration, " ")
	if len(words) > 2 {
		end := len(words)
		if end > 5 {
			end = 5
		}
		if name := strings.TrimSpace(strings.Join(words[2:end], " ")); name != "" {
			return name, true
		}
	}
	return "", false
}

// typePrefix strips transaction-type markers only when a dash follows, so a
// plain "ATM WDL" narration survives untouched.
var typePrefix = regexp.MustCompile(`(?i)(TRANSFER|IMPS|NEFT|RTGS|CHQ|POS|ATM|WDL|DEP|UPI|CR|DR)-`)

// genericPayee is the last-resort cleanup: strip known transaction-type
// prefixes, keep the text before the first "/" and then the first "-".
func genericPayee(narration string) string {
	s := typePrefix.ReplaceAllString(narration, "")
	s = strings.SplitN(s, "/", 2)[0]
	s = strings.SplitN(s, "-", 2)[0]
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackPayee
	}
	return s
}
