package cli

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/httpclient"
	"github.com/reservat/provider-console/internal/console/session"
)

// apiVersionConstraint is the range of backend API versions this CLI speaks.
const apiVersionConstraint = ">= 1.0.0, < 2.0.0"

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get backend status and API compatibility",
	Long: `Get backend status. Reports the server and API versions, the server time,
and whether this CLI is compatible with the backend's API version.

Examples:
  # Get server status
  reservat status

  # Get server status in JSON format
  reservat status -j`,
	RunE: getStatus,
}

// getStatus handles retrieving server status information
func getStatus(cmd *cobra.Command, args []string) error {
	// status must work before login, so the config is loaded here directly
	LoadConfig(configFile)

	cfg := GetConfig()
	if cfg == nil {
		if jsonOutput {
			kv := map[string]string{
				"version_cli": getCLIVersion(),
				"error":       "Config file cannot be loaded",
			}
			printJSON(kv)
		} else {
			fmt.Printf("reservat CLI %s\n", getCLIVersion())
			fmt.Println("Error: Config file cannot be loaded")
		}
		return ErrAlreadyHandled
	}

	credsPath, err := session.DefaultCredentialsPath()
	if err != nil {
		return err
	}
	client := httpclient.NewClient(&clientConfig{
		serverURL: cfg.ServerURL,
		store:     session.NewFileTokenStore(credsPath),
	})

	response, _, err := client.DoRequest(cmd.Context(), httpclient.RequestOptions{
		Method: "GET",
		Path:   "status",
	})
	if err != nil {
		if jsonOutput {
			kv := map[string]string{
				"version_cli": getCLIVersion(),
				"error":       "Unable to connect to server: " + err.Error(),
			}
			printJSON(kv)
		} else {
			fmt.Printf("reservat CLI %s\n", getCLIVersion())
			fmt.Println("Error: Unable to connect to server: " + err.Error())
		}
		return ErrAlreadyHandled
	}

	res := gjson.ParseBytes(response)
	serverVersion := res.Get("server_version").String()
	apiVersion := res.Get("api_version").String()
	serverTime := res.Get("server_time").String()

	compatible, compatNote := checkAPIVersion(apiVersion)

	if jsonOutput {
		printJSON(map[string]any{
			"result":         1,
			"version_cli":    getCLIVersion(),
			"server_version": serverVersion,
			"api_version":    apiVersion,
			"server_time":    serverTime,
			"compatible":     compatible,
		})
		return nil
	}

	fmt.Printf("reservat CLI %s\n", getCLIVersion())
	fmt.Printf("Server Version: %s\n", serverVersion)
	fmt.Printf("API Version: %s\n", apiVersion)
	if serverTime != "" {
		if parsed, err := time.Parse(time.RFC3339, serverTime); err == nil {
			fmt.Printf("Server Time: %s\n", parsed.Local().Format("2006-01-02 15:04:05 MST"))
		} else {
			fmt.Printf("Server Time: %s\n", serverTime)
		}
	}
	if compatible {
		okLabel.Println("✓ API version compatible")
	} else {
		errorLabel.Printf("✗ %s\n", compatNote)
	}
	return nil
}

// checkAPIVersion reports whether the backend API version falls inside the
// range this CLI supports.
func checkAPIVersion(apiVersion string) (bool, string) {
	if apiVersion == "" {
		return false, "server did not report an API version"
	}
	constraint, err := semver.NewConstraint(apiVersionConstraint)
	if err != nil {
		return false, "invalid version constraint: " + err.Error()
	}
	version, err := semver.NewVersion(apiVersion)
	if err != nil {
		return false, "unparsable API version: " + apiVersion
	}
	if !constraint.Check(version) {
		return false, fmt.Sprintf("API version %s outside supported range %s", apiVersion, apiVersionConstraint)
	}
	return true, ""
}

// init initializes the status command and adds it to the root command
func init() {
	rootCmd.AddCommand(statusCmd)
}
