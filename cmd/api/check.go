package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	mem "tour-planning-assistant/internal/adapters/storage/memory"
	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/domain/tours"
	"tour-planning-assistant/internal/domain/venues"
	"tour-planning-assistant/internal/platform/logger"

	"github.com/spf13/cobra"
)

// errViolations hace que el proceso salga con código != 0 sin repetir el reporte.
type errViolations struct{ n int }

func (e errViolations) Error() string {
	return fmt.Sprintf("%d violation(s) found", e.n)
}

type venueFileEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

func newCheckCmd() *cobra.Command {
	var venuesFile string

	cmd := &cobra.Command{
		Use:   "check <tour.json>",
		Short: "Validate a tour file offline and print its violations",
		Long: "Reads a tour in the import format and reports schedule violations.\n" +
			"Without --venues, venue references are not checked.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var venueList []venueFileEntry
			if venuesFile != "" {
				if err := readJSONFile(venuesFile, &venueList); err != nil {
					return err
				}
			}

			var req tours.ImportRequest
			if err := readJSONFile(args[0], &req); err != nil {
				return err
			}

			vs, err := checkTour(cmd.Context(), req, venueList, venuesFile != "")
			if err != nil {
				return err
			}
			printViolations(cmd.OutOrStdout(), req.Name, vs)
			if len(vs) > 0 {
				return errViolations{n: len(vs)}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&venuesFile, "venues", "", "JSON array of venues (id, name, city, capacity)")
	return cmd
}

// checkTour reutiliza el import del servicio sobre almacenamiento en memoria.
func checkTour(ctx context.Context, req tours.ImportRequest, venueList []venueFileEntry, checkVenues bool) ([]schedule.Violation, error) {
	venueRepo := mem.NewVenueRepo()
	for _, v := range venueList {
		if err := venueRepo.Create(ctx, schedule.Venue{ID: v.ID, Name: v.Name, City: v.City, Capacity: v.Capacity}); err != nil {
			return nil, fmt.Errorf("venue %s: %w", v.ID, err)
		}
	}

	svc := tours.NewService(mem.NewTourRepo(), venues.NewService(venueRepo, logger.Nop()), nil, logger.Nop())

	in, err := req.ToInput()
	if err != nil {
		return nil, err
	}
	_, vs, err := svc.Import(ctx, "cli", in)
	if err != nil {
		return nil, err
	}

	if checkVenues {
		return vs, nil
	}
	out := make([]schedule.Violation, 0, len(vs))
	for _, v := range vs {
		if v.Code != schedule.ViolationUnknownVenue {
			out = append(out, v)
		}
	}
	return out, nil
}

func printViolations(w io.Writer, name string, vs []schedule.Violation) {
	if len(vs) == 0 {
		fmt.Fprintf(w, "%s: ok\n", name)
		return
	}
	fmt.Fprintf(w, "%s: %d violation(s)\n", name, len(vs))
	for _, v := range vs {
		fmt.Fprintf(w, "  %-20s %s\n", v.Code, v.Message)
	}
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
