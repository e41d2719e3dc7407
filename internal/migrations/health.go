package migrations

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/carlosnayan/bemestar/internal/driver"
)

// HealthCheck represents the result of a health check
type HealthCheck struct {
	Status       string        `json:"status"` // "healthy", "unhealthy"
	Provider     string        `json:"provider"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

// CheckHealth runs SELECT 1 against the database within timeout
func CheckHealth(ctx context.Context, db driver.DB, provider string, timeout time.Duration) (*HealthCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var result int
	err := db.QueryRow(ctx, "SELECT 1").Scan(&result)

	check := &HealthCheck{
		Provider:     provider,
		ResponseTime: time.Since(start),
		Status:       "healthy",
	}
	if err != nil {
		check.Status = "unhealthy"
		check.Error = err.Error()
		return check, err
	}
	return check, nil
}

// PrintHealthCheck prints the health check result in a readable format
func PrintHealthCheck(w io.Writer, check *HealthCheck) {
	fmt.Fprintf(w, "Health Check:\n")
	fmt.Fprintf(w, "  Status: %s\n", check.Status)
	fmt.Fprintf(w, "  Provider: %s\n", check.Provider)
	fmt.Fprintf(w, "  Response Time: %v\n", check.ResponseTime.Round(time.Microsecond))
	if check.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", check.Error)
	}
}
