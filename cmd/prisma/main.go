package main

import (
	"fmt"
	"os"

	"github.com/carlosnayan/bemestar/cmd/prisma/cmd"

	// drivers database/sql; o PostgreSQL usa pgxpool por padrão e lib/pq
	// quando datasource.driver = "pq"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
