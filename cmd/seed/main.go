// seed carga las seis tablas fuente (hechos y dimensiones de ventas) desde
// archivos CSV exportados del ERP hacia PostgreSQL.
//
// Uso: go run ./cmd/seed [-dir ruta/csvs] [-latin1]
// Por defecto busca los CSV en ./data: fact_sales_monthly.csv,
// fact_gross_price.csv, fact_pre_invoice_deductions.csv,
// fact_post_invoice_deductions.csv, dim_product.csv, dim_customer.csv.
// Con -latin1 transcodifica desde ISO-8859-1 (exportaciones viejas del ERP).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func main() {
	dir := flag.String("dir", "data", "directorio con los CSV fuente")
	latin1 := flag.Bool("latin1", false, "los CSV vienen en ISO-8859-1 en lugar de UTF-8")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loaders := []struct {
		file string
		load func(context.Context, *pgxpool.Pool, *csv.Reader) (int64, error)
	}{
		{"dim_product.csv", loadProducts},
		{"dim_customer.csv", loadCustomers},
		{"fact_gross_price.csv", loadGrossPrices},
		{"fact_pre_invoice_deductions.csv", loadPreDeductions},
		{"fact_post_invoice_deductions.csv", loadPostDeductions},
		{"fact_sales_monthly.csv", loadSales},
	}

	start := time.Now()
	for _, l := range loaders {
		path := filepath.Join(*dir, l.file)
		n, err := loadFile(ctx, pool, path, *latin1, l.load)
		if err != nil {
			log.Fatal().Err(err).Str("archivo", l.file).Msg("cargar CSV")
		}
		log.Info().Str("archivo", l.file).Int64("filas", n).Msg("tabla cargada")
	}
	log.Info().Dur("duracion", time.Since(start)).Msg("seed completado")
}

// loadFile abre el CSV, salta la fila de encabezados y delega la carga.
func loadFile(ctx context.Context, pool *pgxpool.Pool, path string, latin1 bool,
	load func(context.Context, *pgxpool.Pool, *csv.Reader) (int64, error)) (int64, error) {

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var src io.Reader = f
	if latin1 {
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(src)
	if _, err := r.Read(); err != nil { // encabezados
		return 0, fmt.Errorf("leer encabezados de %s: %w", path, err)
	}
	return load(ctx, pool, r)
}

// readAll consume el CSV completo validando el número de columnas.
func readAll(r *csv.Reader, cols int) ([][]string, error) {
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != cols {
			return nil, fmt.Errorf("fila %d: se esperaban %d columnas, hay %d", len(records)+2, cols, len(rec))
		}
		records = append(records, rec)
	}
}

func copyRows(ctx context.Context, pool *pgxpool.Pool, table string, columns []string, rows [][]any) (int64, error) {
	return pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}

func loadSales(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	records, err := readAll(r, 4)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return 0, fmt.Errorf("fecha inválida %q: %w", rec[0], err)
		}
		qty, err := decimal.NewFromString(rec[3])
		if err != nil {
			return 0, fmt.Errorf("cantidad inválida %q: %w", rec[3], err)
		}
		rows = append(rows, []any{date, rec[1], rec[2], qty})
	}
	return copyRows(ctx, pool, "fact_sales_monthly",
		[]string{"date", "customer_code", "product_code", "sold_quantity"}, rows)
}

func loadGrossPrices(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	records, err := readAll(r, 3)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		fy, err := strconv.Atoi(rec[1])
		if err != nil {
			return 0, fmt.Errorf("año fiscal inválido %q: %w", rec[1], err)
		}
		price, err := decimal.NewFromString(rec[2])
		if err != nil {
			return 0, fmt.Errorf("precio inválido %q: %w", rec[2], err)
		}
		rows = append(rows, []any{rec[0], fy, price})
	}
	return copyRows(ctx, pool, "fact_gross_price",
		[]string{"product_code", "fiscal_year", "gross_price"}, rows)
}

func loadPreDeductions(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	rows, err := deductionRows(r)
	if err != nil {
		return 0, err
	}
	return copyRows(ctx, pool, "fact_pre_invoice_deductions",
		[]string{"customer_code", "fiscal_year", "pre_invoice_discount_pct"}, rows)
}

func loadPostDeductions(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	rows, err := deductionRows(r)
	if err != nil {
		return 0, err
	}
	return copyRows(ctx, pool, "fact_post_invoice_deductions",
		[]string{"customer_code", "fiscal_year", "discounts_pct"}, rows)
}

// deductionRows ambas tablas de descuentos comparten formato:
// customer_code, fiscal_year, porcentaje como fracción (0.10 = 10%).
func deductionRows(r *csv.Reader) ([][]any, error) {
	records, err := readAll(r, 3)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		fy, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("año fiscal inválido %q: %w", rec[1], err)
		}
		pct, err := decimal.NewFromString(rec[2])
		if err != nil {
			return nil, fmt.Errorf("descuento inválido %q: %w", rec[2], err)
		}
		rows = append(rows, []any{rec[0], fy, pct})
	}
	return rows, nil
}

func loadProducts(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	records, err := readAll(r, 5)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{rec[0], rec[1], rec[2], rec[3], rec[4]})
	}
	return copyRows(ctx, pool, "dim_product",
		[]string{"product_code", "division", "category", "product", "variant"}, rows)
}

func loadCustomers(ctx context.Context, pool *pgxpool.Pool, r *csv.Reader) (int64, error) {
	records, err := readAll(r, 5)
	if err != nil {
		return 0, err
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{rec[0], rec[1], rec[2], rec[3], rec[4]})
	}
	return copyRows(ctx, pool, "dim_customer",
		[]string{"customer_code", "customer", "market", "region", "channel"}, rows)
}

