package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservat/provider-console/internal/console/reservation"
)

func newReservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Review reservations made against your services",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newReservationListCmd())
	return cmd
}

func newReservationListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			claims, err := rt.requireSession()
			if err != nil {
				return err
			}

			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			statusFilter, _ := cmd.Flags().GetString("status")

			raws, listErr := rt.reservations.ListByProvider(cmd.Context(), claims.SubjectID, page, pageSize)
			if listErr != nil {
				return fmt.Errorf("%s", listErr.Error())
			}

			// services resolve reservation rows to display names; a failed
			// fetch degrades to placeholders instead of failing the listing
			lookup := reservation.Lookup(nil)
			services, svcErr := rt.catalog.ListByProvider(cmd.Context(), claims.SubjectID, 0, 500)
			if svcErr == nil {
				byID := make(map[string]reservation.ServiceSummary, len(services))
				for _, svc := range services {
					byID[svc.ID] = reservation.ServiceSummary{
						Name:        svc.Name,
						Description: svc.Description,
						Vertical:    svc.Vertical,
						City:        svc.City,
					}
				}
				lookup = func(id string) (reservation.ServiceSummary, bool) {
					svc, ok := byID[id]
					return svc, ok
				}
			}

			views := reservation.Project(raws, lookup)
			if statusFilter != "" {
				want := reservation.NormalizeStatus(statusFilter)
				filtered := views[:0]
				for _, view := range views {
					if view.Status == want {
						filtered = append(filtered, view)
					}
				}
				views = filtered
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": reservationViews(views)})
				return nil
			}
			if len(views) == 0 {
				fmt.Println("No reservations on this page")
				return nil
			}
			for _, view := range views {
				printReservationLine(view)
			}
			return nil
		},
	}
	cmd.Flags().Int("page", 0, "Page number, starting at 0")
	cmd.Flags().Int("page-size", 50, "Reservations per page")
	cmd.Flags().String("status", "", "Filter by status (pendiente, confirmada, cancelada, completada)")
	return cmd
}

func reservationViews(views []reservation.View) []map[string]any {
	out := make([]map[string]any, 0, len(views))
	for _, view := range views {
		entry := map[string]any{
			"id":         view.ID,
			"guest":      view.GuestName,
			"service":    view.ServiceName,
			"status":     string(view.Status),
			"party_size": view.PartySize,
			"unit_price": view.UnitPrice,
			"total":      view.Total,
		}
		if !view.StartAt.IsZero() {
			entry["start_at"] = view.StartAt
		}
		if !view.EndAt.IsZero() {
			entry["end_at"] = view.EndAt
		}
		if view.Notes != "" {
			entry["notes"] = view.Notes
		}
		out = append(out, entry)
	}
	return out
}

func printReservationLine(view reservation.View) {
	when := ""
	if !view.StartAt.IsZero() {
		when = view.StartAt.Local().Format("2006-01-02")
	}
	fmt.Printf("%s  %-10s %-10s %-24s %-20s x%d  %d\n",
		view.ID, view.Status, when, view.ServiceName, view.GuestName, view.PartySize, view.Total)
}

func init() {
	rootCmd.AddCommand(newReservationCmd())
}
