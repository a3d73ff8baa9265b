package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/reservat/provider-console/internal/console/media"
)

func newPhotoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage service photos",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.AddCommand(newPhotoAddCmd())
	cmd.AddCommand(newPhotoListCmd())
	return cmd
}

func newPhotoAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <service-id> <file>",
		Short: "Register a photo for a service",
		Long: `Register a photo for a service. The file must be an image; its content is
sniffed, not trusted by extension. The command derives the bucket key and
records the reference against the service. Placing the bytes at the derived
key in the bucket is a separate step.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}
			if rt.cfg.BucketURL == "" {
				return fmt.Errorf("no bucket configured. Run \"reservat config --server <url> --bucket <url>\" first")
			}

			serviceID, file := args[0], args[1]
			data, readErr := os.ReadFile(file)
			if readErr != nil {
				return fmt.Errorf("unable to read photo file: %w", readErr)
			}
			if _, ok := media.DetectImage(data); !ok {
				return fmt.Errorf("%s is not a supported image", file)
			}

			key := media.DeriveKey(serviceID, filepath.Base(file), time.Now())
			url := media.DeriveURL(rt.cfg.BucketURL, key)

			description, _ := cmd.Flags().GetString("description")
			order, _ := cmd.Flags().GetInt("order")
			cover, _ := cmd.Flags().GetBool("cover")

			created, regErr := rt.photos.Register(cmd.Context(), media.PhotoReference{
				ServiceID:   serviceID,
				URL:         url,
				Description: description,
				Order:       order,
				IsCover:     cover,
			})
			if regErr != nil {
				return fmt.Errorf("%s", regErr.Error())
			}

			if jsonOutput {
				printJSON(map[string]any{
					"result": 1,
					"id":     created.ID,
					"key":    key,
					"url":    created.URL,
				})
			} else {
				okLabel.Println("✓ Photo registered")
				fmt.Printf("Key: %s\n", key)
				fmt.Printf("URL: %s\n", created.URL)
				fmt.Println("Upload the file bytes to this key to make the photo visible.")
			}
			return nil
		},
	}
	cmd.Flags().String("description", "", "Photo description")
	cmd.Flags().Int("order", 0, "Display order within the service gallery")
	cmd.Flags().Bool("cover", false, "Mark the photo as the service cover")
	return cmd
}

func newPhotoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <service-id>",
		Short: "List the photos registered for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.requireSession(); err != nil {
				return err
			}

			refs, listErr := rt.photos.ListByService(cmd.Context(), args[0])
			if listErr != nil {
				return fmt.Errorf("%s", listErr.Error())
			}

			if jsonOutput {
				printJSON(map[string]any{"result": 1, "value": refs})
				return nil
			}
			if len(refs) == 0 {
				fmt.Println("No photos registered")
				return nil
			}
			for _, ref := range refs {
				marker := " "
				if ref.IsCover {
					marker = "*"
				}
				state := ""
				if ref.Deleted {
					state = " (deleted)"
				}
				fmt.Printf("%s %2d  %s  %s%s\n", marker, ref.Order, ref.ID, ref.URL, state)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newPhotoCmd())
}
