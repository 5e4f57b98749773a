package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/poolpro/poolpro-backend/internal/professional_calculations/calc"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/domain"
)

// projectFile is the YAML layout accepted by `worker analyze`: one project
// snapshot plus the catalog to choose equipment from.
type projectFile struct {
	Project domain.Project           `yaml:"project"`
	Catalog []domain.EquipmentPreset `yaml:"catalog"`
}

const installationHelp = "CONDUIT, TRAY, AERIAL/AIR or BURIED/DIRECT"

type analyzeOptions struct {
	hydraulic calc.HydraulicParams
	electric  calc.ElectricalParams
	format    string
}

func analyzeCmd() *cobra.Command {
	opt := analyzeOptions{
		hydraulic: calc.DefaultHydraulicParams(),
		electric:  calc.DefaultElectricalParams(50),
	}

	cmd := &cobra.Command{
		Use:   "analyze [project.yaml]",
		Short: "Run the hydraulic and electrical sizing on a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runAnalyze(b, opt, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opt.hydraulic.DistanceToEquipment, "distance", opt.hydraulic.DistanceToEquipment, "pool to equipment room distance (m)")
	f.Float64Var(&opt.hydraulic.StaticLift, "static-lift", opt.hydraulic.StaticLift, "static lift (m)")
	f.Float64Var(&opt.hydraulic.TurnoverHours, "turnover", opt.hydraulic.TurnoverHours, "turnover time (h)")
	f.StringVar(&opt.hydraulic.Material, "material", opt.hydraulic.Material, "pipe material: PVC, PP or COPPER")
	f.Float64Var(&opt.electric.Voltage, "voltage", opt.electric.Voltage, "supply voltage (V)")
	f.Float64Var(&opt.electric.DistanceToPanel, "distance-to-panel", opt.electric.DistanceToPanel, "cable run to the panel (m)")
	f.StringVar(&opt.electric.InstallationType, "installation", opt.electric.InstallationType, installationHelp)
	f.Float64Var(&opt.electric.AmbientTemp, "ambient", opt.electric.AmbientTemp, "ambient temperature (°C)")
	f.Float64Var(&opt.electric.ElectricityCostPerKwh, "tariff", opt.electric.ElectricityCostPerKwh, "electricity cost per kWh")
	f.Float64Var(&opt.electric.DailyHours, "hours", opt.electric.DailyHours, "daily running hours")
	f.StringVar(&opt.format, "format", "json", "output: json or report")
	return cmd
}

func runAnalyze(data []byte, opt analyzeOptions, out io.Writer) error {
	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse project file: %w", err)
	}
	if pf.Project.ID == "" {
		pf.Project.ID = "local"
	}

	res, err := calc.AnalyzeProject(&pf.Project, opt.hydraulic, opt.electric, pf.Catalog)
	if err != nil {
		return err
	}

	switch opt.format {
	case "report":
		_, err = io.WriteString(out, calc.ElectricalReport(res.Electrical))
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	default:
		return fmt.Errorf("unknown format %q", opt.format)
	}
}
