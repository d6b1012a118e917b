package cli

import (
	"fmt"
	"net"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Chiitoi/Aurora/internal/config"
	"github.com/Chiitoi/Aurora/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the Aurora environment",
		Long: `Health check for an Aurora deployment.

Validates:
- Environment configuration
- Bot token and application ID
- Database reachability and schema version
- GIF API and HTTP listen addresses

Examples:
  aurora doctor              # Run full health check
  aurora doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			results := runChecks(cfg, err)

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printResults(results)
				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// runChecks validates a loaded configuration. A load error fails every check
// that depends on it.
func runChecks(cfg *config.Config, loadErr error) []CheckResult {
	if loadErr != nil {
		return []CheckResult{{Name: "Config", Status: "✗", Details: "  " + loadErr.Error()}}
	}
	return []CheckResult{
		{Name: "Config", Status: "✓"},
		checkCredentials(cfg),
		checkDatabase(cfg.DatabasePath),
		checkGIFAPI(cfg.GIFAPIURL),
		checkHTTPAddr(cfg.HTTPAddr),
	}
}

func printResults(results []CheckResult) {
	fmt.Println()
	fmt.Println("Check              Status")
	fmt.Println("─────────────────────────")
	for _, r := range results {
		fmt.Printf("%-18s %s\n", r.Name, r.Status)
	}
	fmt.Println()

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Println("Details:")
				hasDetails = true
			}
			fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
		}
	}
}

// checkCredentials reports a missing token as an error and a missing
// application ID as a warning, since only registration needs it.
func checkCredentials(cfg *config.Config) CheckResult {
	if err := cfg.RequireToken(); err != nil {
		return CheckResult{Name: "Credentials", Status: "✗", Details: "  " + err.Error()}
	}
	if cfg.ApplicationID == "" {
		return CheckResult{Name: "Credentials", Status: "⚠", Details: "  APPLICATION_ID is not set; commands cannot be registered"}
	}
	return CheckResult{Name: "Credentials", Status: "✓"}
}

func checkDatabase(path string) CheckResult {
	conn, err := db.Open(path, nil)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer conn.Close()

	version, err := db.CurrentVersion(conn)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if latest := db.LatestVersion(); version != latest {
		return CheckResult{Name: "Database", Status: "⚠", Details: fmt.Sprintf("  schema version %d, latest is %d", version, latest)}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

func checkGIFAPI(raw string) CheckResult {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return CheckResult{Name: "GIF API", Status: "✗", Details: fmt.Sprintf("  GIF_API_URL %q is not an absolute URL", raw)}
	}
	if u.Scheme != "https" {
		return CheckResult{Name: "GIF API", Status: "⚠", Details: "  GIF_API_URL is not https"}
	}
	return CheckResult{Name: "GIF API", Status: "✓"}
}

func checkHTTPAddr(addr string) CheckResult {
	if addr == "" {
		return CheckResult{Name: "HTTP", Status: "⚠", Details: "  HTTP_ADDR is empty; the stats API is disabled"}
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return CheckResult{Name: "HTTP", Status: "✗", Details: fmt.Sprintf("  HTTP_ADDR %q: %v", addr, err)}
	}
	return CheckResult{Name: "HTTP", Status: "✓"}
}
