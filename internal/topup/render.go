package topup

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Render formats company blocks as the plain-text top-up report. Blocks are
// separated by a blank line.
func Render(blocks []CompanyBlock) string {
	parts := make([]string, len(blocks))
	for i, block := range blocks {
		parts[i] = RenderBlock(block)
	}
	return strings.Join(parts, "\n")
}

// RenderBlock formats a single company block, terminated by a newline.
func RenderBlock(block CompanyBlock) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company Id: %d\n", block.CompanyID)
	fmt.Fprintf(&sb, "Company Name: %s\n", block.CompanyName)
	sb.WriteString("Users Emailed:\n")
	writeUserLines(&sb, block.Emailed)
	sb.WriteString("Users Not Emailed:\n")
	writeUserLines(&sb, block.NotEmailed)
	fmt.Fprintf(&sb, "Total amount of top ups for %s: %s\n", block.CompanyName, FormatNumber(block.TotalTopUp))
	return sb.String()
}

func writeUserLines(sb *strings.Builder, lines []UserLine) {
	for _, line := range lines {
		fmt.Fprintf(sb, "\t%s, %s, %s\n", line.LastName, line.FirstName, line.Email)
		fmt.Fprintf(sb, "\t  Previous Token Balance: %s\n", FormatNumber(line.PreviousBalance))
		fmt.Fprintf(sb, "\t  New Token Balance: %s\n", FormatNumber(line.NewBalance))
	}
}

// FormatNumber prints v the way JavaScript's Number#toString does, so whole
// balances carry no decimal point.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent rewrites Go's two-digit exponent ("1e-07") as "1e-7".
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}
