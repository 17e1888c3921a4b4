package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	year    = flag.Int("year", 0, "Financial year to sample (0 = latest in store)")
	samples = flag.Int("samples", 3, "Number of districts to sample")
)

type metric struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer db.Close()

	targetYear := *year
	if targetYear == 0 {
		if err := db.QueryRow(`SELECT COALESCE(MAX(year), 0) FROM mgnrega.reports`).Scan(&targetYear); err != nil {
			fatalf("find latest year: %v", err)
		}
		if targetYear == 0 {
			fatalf("no reports in store - run the seeder or a sync pass first")
		}
	}

	rows, err := db.Query(`
		SELECT district, state, total_jobcards, total_workers,
		       total_persondays_generated, total_expenditure_rs, metrics, generated
		FROM mgnrega.reports
		WHERE year = $1
		ORDER BY district
		LIMIT $2`, targetYear, *samples)
	if err != nil {
		fatalf("sample query: %v", err)
	}
	defer rows.Close()

	fmt.Printf("Data Quality Report (year %d):\n\n", targetYear)

	for rows.Next() {
		var (
			district, state                  string
			jobcards, workers, persondays    int
			expenditure                      float64
			metricsJSON                      []byte
			generated                        bool
		)
		if err := rows.Scan(&district, &state, &jobcards, &workers, &persondays, &expenditure, &metricsJSON, &generated); err != nil {
			fatalf("scan: %v", err)
		}

		fmt.Printf("District: %s, %s", district, state)
		if generated {
			fmt.Print(" (synthetic)")
		}
		fmt.Println()
		fmt.Printf("   Jobcards: %d\n", jobcards)
		if jobcards > 0 {
			fmt.Printf("   Workers: %d (%d%% participation)\n", workers, workers*100/jobcards)
		}
		fmt.Printf("   Persondays: %d\n", persondays)
		if workers > 0 {
			fmt.Printf("   Avg days/worker: %d\n", persondays/workers)
		}
		fmt.Printf("   Expenditure: Rs %.0f lakh\n", expenditure)

		var metrics []metric
		if err := json.Unmarshal(metricsJSON, &metrics); err == nil && len(metrics) > 0 {
			reportSeasonality(metrics)
		}
		fmt.Println()
	}
	if err := rows.Err(); err != nil {
		fatalf("iterate: %v", err)
	}
}

// reportSeasonality compares the summer employment peak against the winter
// trough; realistic MGNREGA data shows a clear pre-monsoon boost.
func reportSeasonality(metrics []metric) {
	sum := func(months ...string) (total, n int) {
		want := map[string]bool{}
		for _, m := range months {
			want[m] = true
		}
		for _, m := range metrics {
			if want[m.Month] {
				total += m.Value
				n++
			}
		}
		return
	}

	summerTotal, summerN := sum("May", "Jun", "Jul")
	winterTotal, winterN := sum("Jan", "Feb", "Mar")
	if summerN > 0 && winterN > 0 && winterTotal > 0 {
		summerAvg := float64(summerTotal) / float64(summerN)
		winterAvg := float64(winterTotal) / float64(winterN)
		fmt.Printf("   Seasonal boost: %.2fx (summer vs winter)\n", summerAvg/winterAvg)
	}

	lo, hi := metrics[0].Value, metrics[0].Value
	for _, m := range metrics[1:] {
		if m.Value < lo {
			lo = m.Value
		}
		if m.Value > hi {
			hi = m.Value
		}
	}
	fmt.Printf("   Monthly range: %d - %d persondays\n", lo, hi)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
