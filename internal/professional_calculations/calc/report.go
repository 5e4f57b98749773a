package calc

import (
	"fmt"
	"strings"
)

// ElectricalReport renders the analysis as a plain-text report for the
// installer.
func ElectricalReport(a *ElectricalAnalysis) string {
	var b strings.Builder

	b.WriteString("=== ELECTRICAL REPORT ===\n\n")

	b.WriteString("1. INSTALLED LOADS\n")
	for _, l := range a.Loads {
		fmt.Fprintf(&b, "   - %s: %.0fW (%dx%.0fW) @ %.0fV\n", l.Name, l.TotalPower(), l.Quantity, l.Power, l.Voltage)
		fmt.Fprintf(&b, "     power factor %.2f | demand %.0f%%\n", l.PowerFactor, l.DemandFactor*100)
	}

	b.WriteString("\n2. TOTALS\n")
	fmt.Fprintf(&b, "   - installed power: %.2f kW\n", a.InstalledPower/1000)
	fmt.Fprintf(&b, "   - demand power: %.2f kW\n", a.DemandPower/1000)
	fmt.Fprintf(&b, "   - design current: %.2f A\n", a.DesignCurrent)

	b.WriteString("\n3. CONDUCTOR\n")
	fmt.Fprintf(&b, "   - section: %s (%s, %.0f m)\n", a.Cable.SectionLabel, a.InstallationType, a.DistanceToPanel)
	fmt.Fprintf(&b, "   - voltage drop: %.2fV (%.2f%%)\n", a.Cable.VoltageDrop, a.Cable.VoltageDropPercent)
	status := "within limits"
	if !a.Cable.Acceptable {
		status = "NOT within limits"
	}
	fmt.Fprintf(&b, "   - status: %s\n", status)

	b.WriteString("\n4. PROTECTION\n")
	fmt.Fprintf(&b, "   - breaker: %dA curve %s\n", a.Protection.Breaker, a.Protection.BreakerType)
	fmt.Fprintf(&b, "   - RCD: %dA / %dmA\n", a.Protection.RCD, a.Protection.RCDSensitivity)

	c := a.OperatingCost
	b.WriteString("\n5. OPERATING COST\n")
	fmt.Fprintf(&b, "   - daily energy: %.2f kWh\n", c.DailyKwh)
	fmt.Fprintf(&b, "   - daily: $%.0f\n", c.DailyCost)
	fmt.Fprintf(&b, "   - monthly: $%.0f\n", c.MonthlyCost)
	fmt.Fprintf(&b, "   - annual: $%.0f\n", c.AnnualCost)

	if len(a.Warnings) > 0 {
		b.WriteString("\nWARNINGS\n")
		for _, w := range a.Warnings {
			fmt.Fprintf(&b, "   - %s\n", w)
		}
	}
	if len(a.Errors) > 0 {
		b.WriteString("\nERRORS\n")
		for _, e := range a.Errors {
			fmt.Fprintf(&b, "   - %s\n", e)
		}
	}
	return b.String()
}
