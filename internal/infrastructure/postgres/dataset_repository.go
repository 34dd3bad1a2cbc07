package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetRepo)(nil)

// DatasetRepo lectura en bloque de las seis colecciones fuente.
// Solo lectura: este servicio nunca escribe sobre hechos ni dimensiones.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador del dataset.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

// LoadDataset lee las seis tablas completas y devuelve el snapshot.
func (r *DatasetRepo) LoadDataset(ctx context.Context) (*entity.Dataset, error) {
	ds := &entity.Dataset{}
	var err error

	if ds.Sales, err = r.loadSales(ctx); err != nil {
		return nil, err
	}
	if ds.GrossPrices, err = r.loadGrossPrices(ctx); err != nil {
		return nil, err
	}
	if ds.PreDeductions, err = r.loadPreDeductions(ctx); err != nil {
		return nil, err
	}
	if ds.PostDeductions, err = r.loadPostDeductions(ctx); err != nil {
		return nil, err
	}
	if ds.Products, err = r.loadProducts(ctx); err != nil {
		return nil, err
	}
	if ds.Customers, err = r.loadCustomers(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *DatasetRepo) loadSales(ctx context.Context) ([]entity.SalesRecord, error) {
	const query = `
		SELECT date, customer_code, product_code, sold_quantity
		FROM fact_sales_monthly`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadSales: %w", err)
	}
	defer rows.Close()

	var list []entity.SalesRecord
	for rows.Next() {
		var s entity.SalesRecord
		if err := rows.Scan(&s.Date, &s.CustomerCode, &s.ProductCode, &s.SoldQuantity); err != nil {
			return nil, fmt.Errorf("dataset.loadSales scan: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *DatasetRepo) loadGrossPrices(ctx context.Context) ([]entity.GrossPrice, error) {
	const query = `
		SELECT product_code, fiscal_year, gross_price
		FROM fact_gross_price`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadGrossPrices: %w", err)
	}
	defer rows.Close()

	var list []entity.GrossPrice
	for rows.Next() {
		var p entity.GrossPrice
		if err := rows.Scan(&p.ProductCode, &p.FiscalYear, &p.Price); err != nil {
			return nil, fmt.Errorf("dataset.loadGrossPrices scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *DatasetRepo) loadPreDeductions(ctx context.Context) ([]entity.PreInvoiceDeduction, error) {
	const query = `
		SELECT customer_code, fiscal_year, pre_invoice_discount_pct
		FROM fact_pre_invoice_deductions`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadPreDeductions: %w", err)
	}
	defer rows.Close()

	var list []entity.PreInvoiceDeduction
	for rows.Next() {
		var d entity.PreInvoiceDeduction
		if err := rows.Scan(&d.CustomerCode, &d.FiscalYear, &d.DiscountPct); err != nil {
			return nil, fmt.Errorf("dataset.loadPreDeductions scan: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DatasetRepo) loadPostDeductions(ctx context.Context) ([]entity.PostInvoiceDeduction, error) {
	const query = `
		SELECT customer_code, fiscal_year, discounts_pct
		FROM fact_post_invoice_deductions`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadPostDeductions: %w", err)
	}
	defer rows.Close()

	var list []entity.PostInvoiceDeduction
	for rows.Next() {
		var d entity.PostInvoiceDeduction
		if err := rows.Scan(&d.CustomerCode, &d.FiscalYear, &d.DiscountPct); err != nil {
			return nil, fmt.Errorf("dataset.loadPostDeductions scan: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DatasetRepo) loadProducts(ctx context.Context) ([]entity.Product, error) {
	const query = `
		SELECT product_code, division, category, product, variant
		FROM dim_product`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadProducts: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.Code, &p.Division, &p.Category, &p.Name, &p.Variant); err != nil {
			return nil, fmt.Errorf("dataset.loadProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *DatasetRepo) loadCustomers(ctx context.Context) ([]entity.Customer, error) {
	const query = `
		SELECT customer_code, customer, market, region, channel
		FROM dim_customer`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.loadCustomers: %w", err)
	}
	defer rows.Close()

	var list []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.Code, &c.Name, &c.Market, &c.Region, &c.Channel); err != nil {
			return nil, fmt.Errorf("dataset.loadCustomers scan: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
