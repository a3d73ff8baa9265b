package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reservat/provider-console/internal/common/apperrors"
	"github.com/reservat/provider-console/internal/console/catalog"
	"github.com/reservat/provider-console/internal/console/detail"
)

// serviceFile is the YAML shape of a service draft or patch. Field names match
// the backend wire names so a fetched record can be edited and resubmitted.
type serviceFile struct {
	Name        *string        `yaml:"nombre"`
	Description *string        `yaml:"descripcion"`
	Price       *int64         `yaml:"precio"`
	Currency    *string        `yaml:"moneda"`
	Active      *bool          `yaml:"activo"`
	Relevance   *string        `yaml:"relevancia"`
	City        *string        `yaml:"ciudad"`
	Region      *string        `yaml:"departamento"`
	Address     *string        `yaml:"ubicacion"`
	Vertical    *string        `yaml:"tipo_servicio"`
	Detail      map[string]any `yaml:"detalles_del_servicio"`
}

func readServiceFile(path string) (*serviceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read service file: %w", err)
	}
	var sf serviceFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("unable to parse service file: %w", err)
	}
	return &sf, nil
}

// detailFromMap converts the free-form YAML detail block into a typed Detail
// for the given vertical.
func detailFromMap(v detail.Vertical, m map[string]any) (*detail.Detail, error) {
	if m == nil {
		return nil, nil
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("unable to encode detail block: %w", err)
	}
	d := detail.Decode(v, string(payload))
	return &d, nil
}

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage your published services",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newServiceListCmd())
	cmd.AddCommand(newServiceGetCmd())
	cmd.AddCommand(newServiceCreateCmd())
	cmd.AddCommand(newServiceUpdateCmd())
	cmd.AddCommand(newServiceDeleteCmd())
	return cmd
}

func newServiceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your published services",
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

			records, listErr := rt.catalog.ListByProvider(cmd.Context(), claims.SubjectID, page, pageSize)
			if listErr != nil {
				return fmt.Errorf("%s", listErr.Error())
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": serviceViews(records)})
				return nil
			}
			if len(records) == 0 {
				fmt.Println("No services on this page")
				return nil
			}
			for _, rec := range records {
				printServiceLine(rec)
			}
			return nil
		},
	}
	cmd.Flags().Int("page", 0, "Page number, starting at 0")
	cmd.Flags().Int("page-size", 50, "Services per page")
	return cmd
}

func newServiceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <service-id>",
		Short: "Show one service in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}

			rec, getErr := rt.catalog.Get(cmd.Context(), args[0])
			if getErr != nil {
				return fmt.Errorf("%s", getErr.Error())
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": serviceView(rec)})
				return nil
			}
			printServiceFull(rec)
			return nil
		},
	}
}

func newServiceCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a service from a YAML file",
		Long: `Create a service from a YAML file. The file uses the backend field names:

  nombre: Hotel Mar Azul
  descripcion: Frente al mar
  precio: 250000
  tipo_servicio: hotel
  ciudad: Cartagena
  detalles_del_servicio:
    tipo_alojamiento: Hotel
    capacidad: 2

Omitted detail fields take the defaults for the vertical.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("no file provided. Use the -f flag")
			}
			sf, err := readServiceFile(file)
			if err != nil {
				return err
			}

			draft := catalog.Draft{}
			if sf.Name != nil {
				draft.Name = *sf.Name
			}
			if sf.Description != nil {
				draft.Description = *sf.Description
			}
			if sf.Price != nil {
				draft.Price = *sf.Price
			}
			if sf.Currency != nil {
				draft.Currency = *sf.Currency
			}
			draft.Active = sf.Active
			if sf.Relevance != nil {
				draft.Relevance = catalog.ParseRelevance(*sf.Relevance)
			}
			if sf.City != nil {
				draft.City = *sf.City
			}
			if sf.Region != nil {
				draft.Region = *sf.Region
			}
			if sf.Address != nil {
				draft.Address = *sf.Address
			}
			if sf.Vertical != nil {
				v, _ := detail.ParseVertical(*sf.Vertical)
				draft.Vertical = v
			}
			d, err := detailFromMap(draft.Vertical, sf.Detail)
			if err != nil {
				return err
			}
			draft.Detail = d

			rec, createErr := rt.catalog.Create(cmd.Context(), draft)
			if createErr != nil {
				return validationAware(createErr)
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": serviceView(rec)})
			} else {
				okLabel.Println("✓ Service created")
				printServiceFull(rec)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Path to the service YAML file")
	return cmd
}

func newServiceUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <service-id> -f <file>",
		Short: "Update a service from a YAML file",
		Long: `Update a service from a YAML file. Only the fields present in the file are
changed. The service type cannot be changed after creation and is rejected if
present in the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("no file provided. Use the -f flag")
			}
			sf, err := readServiceFile(file)
			if err != nil {
				return err
			}
			if sf.Vertical != nil {
				return fmt.Errorf("tipo_servicio cannot be changed after creation")
			}

			patch := catalog.Patch{
				Name:        sf.Name,
				Description: sf.Description,
				Price:       sf.Price,
				Currency:    sf.Currency,
				Active:      sf.Active,
				City:        sf.City,
				Region:      sf.Region,
				Address:     sf.Address,
			}
			if sf.Relevance != nil {
				r := catalog.ParseRelevance(*sf.Relevance)
				patch.Relevance = &r
			}
			if sf.Detail != nil {
				// the detail block is typed against the service's current vertical
				current, getErr := rt.catalog.Get(cmd.Context(), args[0])
				if getErr != nil {
					return fmt.Errorf("%s", getErr.Error())
				}
				d, err := detailFromMap(current.Vertical, sf.Detail)
				if err != nil {
					return err
				}
				patch.Detail = d
			}

			rec, updateErr := rt.catalog.Update(cmd.Context(), args[0], patch)
			if updateErr != nil {
				return validationAware(updateErr)
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": serviceView(rec)})
			} else {
				okLabel.Println("✓ Service updated")
				printServiceFull(rec)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Path to the service YAML file")
	return cmd
}

func newServiceDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <service-id>",
		Short: "Delete a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Printf("Delete service %s? [y/N]: ", args[0])
				reader := bufio.NewReader(os.Stdin)
				line, readErr := reader.ReadString('\n')
				if readErr != nil {
					return fmt.Errorf("failed to read confirmation: %w", readErr)
				}
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					fmt.Println("Aborted")
					return nil
				}
			}

			if deleteErr := rt.catalog.Delete(cmd.Context(), args[0]); deleteErr != nil {
				return fmt.Errorf("%s", deleteErr.Error())
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1})
			} else {
				okLabel.Println("✓ Service deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// validationAware turns a field-validation failure into a message listing the
// offending wire fields.
func validationAware(err apperrors.Error) error {
	if fields := apperrors.FieldsOf(err); len(fields) > 0 {
		return fmt.Errorf("validation failed on: %s", strings.Join(fields, ", "))
	}
	return fmt.Errorf("%s", err.Error())
}

// serviceView is the JSON output shape for a service record.
func serviceView(rec catalog.ServiceRecord) map[string]any {
	view := map[string]any{
		"id":          rec.ID,
		"name":        rec.Name,
		"description": rec.Description,
		"vertical":    string(rec.Vertical),
		"price":       rec.Price,
		"currency":    rec.Currency,
		"active":      rec.Active,
		"relevance":   string(rec.Relevance),
		"city":        rec.City,
		"region":      rec.Region,
		"address":     rec.Address,
	}
	if !rec.CreatedAt.IsZero() {
		view["created_at"] = rec.CreatedAt
	}
	if !rec.UpdatedAt.IsZero() {
		view["updated_at"] = rec.UpdatedAt
	}
	return view
}

func serviceViews(records []catalog.ServiceRecord) []map[string]any {
	views := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		views = append(views, serviceView(rec))
	}
	return views
}

func printServiceLine(rec catalog.ServiceRecord) {
	state := "active"
	if !rec.Active {
		state = "inactive"
	}
	fmt.Printf("%s  %-12s %-10s %8d %s  %s\n", rec.ID, rec.Vertical, state, rec.Price, rec.Currency, rec.Name)
}

func printServiceFull(rec catalog.ServiceRecord) {
	fmt.Printf("ID: %s\n", rec.ID)
	fmt.Printf("Name: %s\n", rec.Name)
	fmt.Printf("Description: %s\n", rec.Description)
	fmt.Printf("Vertical: %s\n", rec.Vertical)
	fmt.Printf("Price: %d %s\n", rec.Price, rec.Currency)
	fmt.Printf("Active: %t\n", rec.Active)
	fmt.Printf("Relevance: %s\n", rec.Relevance)
	if rec.City != "" {
		fmt.Printf("City: %s\n", rec.City)
	}
	if rec.Region != "" {
		fmt.Printf("Region: %s\n", rec.Region)
	}
	if rec.Address != "" {
		fmt.Printf("Address: %s\n", rec.Address)
	}
	if !rec.UpdatedAt.IsZero() {
		fmt.Printf("Updated: %s\n", rec.UpdatedAt.Local().Format("2006-01-02 15:04:05 MST"))
	}
}

func init() {
	rootCmd.AddCommand(newServiceCmd())
}
