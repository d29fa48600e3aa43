package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sagm07/SolarOS/internal/config"
	"github.com/sagm07/SolarOS/internal/data"
	"github.com/sagm07/SolarOS/internal/forecast"
	"github.com/sagm07/SolarOS/internal/model"
	"github.com/sagm07/SolarOS/internal/montecarlo"
	"github.com/sagm07/SolarOS/internal/optimizer"
	"github.com/sagm07/SolarOS/internal/portfolio"
	"github.com/sagm07/SolarOS/internal/replay"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "solaros",
		Short:         "Cleaning decision engine for solar fleets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (optional)")

	root.AddCommand(newOptimizeCmd(&configPath))
	root.AddCommand(newReplayCmd(&configPath))
	root.AddCommand(newPortfolioCmd(&configPath))
	root.AddCommand(newUncertaintyCmd(&configPath))
	return root
}

// loadParams resolves economic parameters from the optional config file,
// falling back to fleet defaults.
func loadParams(configPath string) (model.EconomicParameters, *config.Config, error) {
	if configPath == "" {
		return model.DefaultEconomicParameters(), nil, nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return model.EconomicParameters{}, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg.Economics.ToModelParams(), cfg, nil
}

func loadSeries(forecastPath string) (model.YieldSeries, *data.ForecastFile, error) {
	f, err := data.LoadForecastJSON(forecastPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load forecast: %w", err)
	}
	return f.Series, f, nil
}

func newOptimizeCmd(configPath *string) *cobra.Command {
	var forecastPath, ledgerOut string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Compute the optimal cleaning calendar for one site",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := loadParams(*configPath)
			if err != nil {
				return err
			}
			series, f, err := loadSeries(forecastPath)
			if err != nil {
				return err
			}

			res, err := optimizer.Optimize(series, params)
			if err != nil {
				return err
			}
			baseline, err := optimizer.AlwaysWaitValue(series, params)
			if err != nil {
				return err
			}

			fmt.Printf("site:            %s\n", f.SiteID)
			fmt.Printf("horizon:         %d steps\n", res.HorizonSteps)
			fmt.Printf("cleanings:       %d at %v\n", res.Cleanings, res.Calendar)
			fmt.Printf("total value:     %.2f\n", res.TotalNetValue)
			fmt.Printf("baseline value:  %.2f (never clean)\n", baseline)
			fmt.Printf("uplift:          %.2f\n", res.TotalNetValue-baseline)
			fmt.Printf("water:           %.0f L\n", res.WaterLiters)
			fmt.Printf("energy recovered: %.1f kWh\n", res.EnergyRecoveredKWh)
			fmt.Printf("co2 offset:      %.1f kg\n", res.CO2OffsetKg)

			if ledgerOut != "" {
				eng, err := replay.New(params)
				if err != nil {
					return err
				}
				rep, err := eng.ReplaySeries(series, res.Calendar)
				if err != nil {
					return err
				}
				if err := replay.WriteLedgerCSV(ledgerOut, rep.Ledger); err != nil {
					return fmt.Errorf("write ledger: %w", err)
				}
				fmt.Printf("ledger written to %s\n", ledgerOut)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&forecastPath, "forecast", "", "path to forecast JSON (required)")
	cmd.Flags().StringVar(&ledgerOut, "ledger-out", "", "write the per-step ledger CSV to this path")
	cmd.MarkFlagRequired("forecast")
	return cmd
}

func newReplayCmd(configPath *string) *cobra.Command {
	var forecastPath string
	var calendar []int
	var spreadFraction float64

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a fixed calendar over pessimistic/median/optimistic curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := loadParams(*configPath)
			if err != nil {
				return err
			}
			series, _, err := loadSeries(forecastPath)
			if err != nil {
				return err
			}

			// Derive the band curves from the median forecast when no
			// external confidence curves are supplied.
			median := series.Potentials()
			pess := make([]float64, len(median))
			opt := make([]float64, len(median))
			for i, v := range median {
				pess[i] = v * (1 - spreadFraction)
				opt[i] = v * (1 + spreadFraction)
			}

			eng, err := replay.New(params)
			if err != nil {
				return err
			}
			band, err := eng.Band(model.YieldCurves{
				Pessimistic: pess,
				Median:      median,
				Optimistic:  opt,
			}, series.Precipitation(), calendar)
			if err != nil {
				return err
			}

			fmt.Printf("p10:    %.2f\n", band.P10)
			fmt.Printf("p50:    %.2f\n", band.P50)
			fmt.Printf("p90:    %.2f\n", band.P90)
			fmt.Printf("spread: %.2f\n", band.Spread)
			return nil
		},
	}
	cmd.Flags().StringVar(&forecastPath, "forecast", "", "path to forecast JSON (required)")
	cmd.Flags().IntSliceVar(&calendar, "calendar", nil, "cleaning step indices, e.g. --calendar 240,480")
	cmd.Flags().Float64Var(&spreadFraction, "spread", 0.15, "fractional spread for derived curves")
	cmd.MarkFlagRequired("forecast")
	return cmd
}

func newPortfolioCmd(configPath *string) *cobra.Command {
	var catalogPath, mode string
	var capacityLiters float64

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Allocate the shared water budget across catalog sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, cfg, err := loadParams(*configPath)
			if err != nil {
				return err
			}
			if cfg != nil {
				if mode == "" {
					mode = cfg.Portfolio.Mode
				}
				if capacityLiters == 0 {
					capacityLiters = cfg.Portfolio.CapacityLiters
				}
			}
			m, err := portfolio.ParseMode(mode)
			if err != nil {
				return err
			}

			if catalogPath == "" {
				catalogPath = data.GetDefaultCatalogPath()
			}
			cat, err := data.LoadSiteCatalog(catalogPath)
			if err != nil {
				return err
			}

			// Optimize each site independently, then solve the allocation.
			candidates := make([]model.SiteScore, 0, len(cat.Sites))
			for _, site := range cat.Sites {
				fp := site.ForecastFile
				if !filepath.IsAbs(fp) {
					fp = filepath.Join(filepath.Dir(catalogPath), fp)
				}
				f, err := data.LoadForecastJSONCached(site.ID, fp)
				if err != nil {
					return fmt.Errorf("site %s: %w", site.ID, err)
				}
				res, err := optimizer.Optimize(f.Series, params)
				if err != nil {
					return fmt.Errorf("site %s: %w", site.ID, err)
				}
				candidates = append(candidates, model.SiteScore{
					SiteID:             site.ID,
					Calendar:           res.Calendar,
					NetValue:           res.TotalNetValue,
					WaterLiters:        res.WaterLiters,
					EnergyRecoveredKWh: res.EnergyRecoveredKWh,
					CO2OffsetKg:        res.CO2OffsetKg,
				})
			}

			sel, err := portfolio.Allocate(candidates, portfolio.Config{
				Mode:           m,
				CapacityLiters: capacityLiters,
			})
			if err != nil {
				return err
			}

			fmt.Printf("mode:       %s\n", m)
			fmt.Printf("selected:   %v\n", sel.SelectedIDs())
			fmt.Printf("water used: %.0f / %.0f L\n", sel.ResourceUsedLiters, capacityLiters)
			fmt.Printf("net value:  %.2f\n", sel.TotalNetValue)
			fmt.Printf("energy:     %.1f kWh\n", sel.AggregateEnergyKWh)
			fmt.Printf("co2:        %.1f kg\n", sel.AggregateCO2Kg)
			for _, d := range sel.Deferred {
				fmt.Printf("deferred:   %s (%s)\n", d.SiteID, d.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to site catalog JSON")
	cmd.Flags().StringVar(&mode, "mode", "", "allocation mode: PROFIT, CARBON, WATER_SCARCITY")
	cmd.Flags().Float64Var(&capacityLiters, "capacity", 0, "water budget in liters")
	return cmd
}

func newUncertaintyCmd(configPath *string) *cobra.Command {
	var forecastPath string
	var trials int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "uncertainty",
		Short: "Quantify forecast uncertainty with Monte Carlo trials",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, _, err := loadParams(*configPath)
			if err != nil {
				return err
			}
			f, err := data.LoadForecastJSON(forecastPath)
			if err != nil {
				return err
			}
			if len(f.Weather) == 0 {
				return fmt.Errorf("forecast file has no weather series; uncertainty needs raw weather input")
			}

			pipeline := func(steps []model.WeatherStep) (float64, error) {
				series := forecast.YieldFromWeather(steps, 1000.0, 0.20)
				res, err := optimizer.Optimize(series, params)
				if err != nil {
					return 0, err
				}
				return res.TotalNetValue, nil
			}

			outcome, err := montecarlo.Run(context.Background(), f.Weather, montecarlo.Config{
				Trials: trials,
				Seed:   seed,
			}, pipeline)
			if err != nil {
				return err
			}

			fmt.Printf("simulations: %d\n", outcome.SimulationsRun)
			fmt.Printf("p10:         %.2f\n", outcome.Band.P10)
			fmt.Printf("p50:         %.2f\n", outcome.Band.P50)
			fmt.Printf("p90:         %.2f\n", outcome.Band.P90)
			fmt.Printf("spread:      %.2f\n", outcome.Band.Spread)
			fmt.Printf("mean:        %.2f (sd %.2f)\n", outcome.Mean, outcome.StdDev)
			return nil
		},
	}
	cmd.Flags().StringVar(&forecastPath, "forecast", "", "path to forecast JSON with weather (required)")
	cmd.Flags().IntVar(&trials, "trials", 50, "number of Monte Carlo trials")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "noise seed")
	cmd.MarkFlagRequired("forecast")
	return cmd
}
