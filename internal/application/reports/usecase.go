// Package reports contiene los cuatro generadores de reportes de ventas.
//
// Todos operan sobre el snapshot inmutable cargado al arrancar: agregaciones
// puras en memoria, deterministas y sin estado compartido mutable, por lo que
// pueden atender requests concurrentes sin locks.
package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/fiscal"
	"github.com/jhoicas/Ventas-api/internal/domain/sales"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

const (
	defaultTopMarkets = 5
	maxTopMarkets     = 50
	topProductsRank   = 3 // dense rank máximo incluido por división
)

var (
	hundred = decimal.NewFromInt(100)
	million = decimal.NewFromInt(1_000_000)
)

// UseCase genera los reportes a partir del snapshot y el calendario fiscal.
//
// Las ventas netas se calculan una sola vez en la construcción (el snapshot no
// cambia); las líneas excluidas por falta de precio o descuento se registran
// como warning con conteo por causa, nunca se calculan mal en silencio.
type UseCase struct {
	snapshot   *entity.Dataset
	calc       *sales.Calculator
	net        []entity.NetSalesRecord
	products   map[string]entity.Product
	customers  map[string]entity.Customer
	startMonth time.Month
	cache      Cache // puede ser nil (caché deshabilitado)
	log        *logger.Logger
}

// NewUseCase construye el generador de reportes y precalcula las ventas netas.
func NewUseCase(snapshot *entity.Dataset, startMonth time.Month, cache Cache, log *logger.Logger) *UseCase {
	calc := sales.NewCalculator(
		snapshot.GrossPrices, snapshot.PreDeductions, snapshot.PostDeductions, startMonth,
	)
	net, skipped := calc.Compute(snapshot.Sales)
	logSkipped(log, skipped)

	return &UseCase{
		snapshot:   snapshot,
		calc:       calc,
		net:        net,
		products:   snapshot.ProductsByCode(),
		customers:  snapshot.CustomersByCode(),
		startMonth: startMonth,
		cache:      cache,
		log:        log,
	}
}

// logSkipped agrupa las líneas excluidas por causa y emite un warning por cada una.
func logSkipped(log *logger.Logger, skipped []sales.Skipped) {
	if len(skipped) == 0 {
		return
	}
	byReason := make(map[sales.SkipReason]int)
	for _, s := range skipped {
		byReason[s.Reason]++
	}
	for reason, count := range byReason {
		log.Warn().
			Str("causa", string(reason)).
			Int("lineas", count).
			Msg("líneas de venta excluidas del cálculo de ventas netas")
	}
}

// ── 1. Ventas brutas mensuales de un cliente ─────────────────────────────────

// MonthlyGrossSales reporte de ventas brutas de un cliente en un año fiscal.
// Opera sobre las líneas de venta crudas (no requiere descuentos): solo
// necesita el precio bruto del producto para el año fiscal.
func (uc *UseCase) MonthlyGrossSales(ctx context.Context, req dto.MonthlyGrossSalesRequest) (*dto.MonthlyGrossSalesReportDTO, error) {
	if strings.TrimSpace(req.CustomerCode) == "" {
		return nil, fmt.Errorf("%w: customer_code no puede estar vacío", domain.ErrInvalidParameter)
	}
	if err := validateFiscalYear(req.FiscalYear); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:monthly_gross:%s:%d", req.CustomerCode, req.FiscalYear)
	var cached dto.MonthlyGrossSalesReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	var rows []dto.MonthlyGrossSalesRowDTO
	total := decimal.Zero
	missingPrice, missingProduct := 0, 0

	for _, r := range uc.snapshot.Sales {
		if r.CustomerCode != req.CustomerCode || fiscal.Year(r.Date, uc.startMonth) != req.FiscalYear {
			continue
		}
		price, ok := uc.calc.PriceFor(r.ProductCode, req.FiscalYear)
		if !ok {
			missingPrice++
			continue
		}
		product, ok := uc.products[r.ProductCode]
		if !ok {
			missingProduct++
			continue
		}
		rowTotal := r.SoldQuantity.Mul(price).Round(2)
		// El total del reporte suma los montos ya redondeados de cada fila,
		// para que cuadre con lo que el usuario ve.
		total = total.Add(rowTotal)
		rows = append(rows, dto.MonthlyGrossSalesRowDTO{
			Date:         r.Date.Format("2006-01-02"),
			FiscalMonth:  fiscal.Month(r.Date, uc.startMonth),
			Product:      product.Name,
			Variant:      product.Variant,
			SoldQuantity: r.SoldQuantity,
			GrossPrice:   price.Round(2),
			GrossTotal:   rowTotal,
		})
	}
	uc.warnMissing("monthly_gross_sales", missingPrice, missingProduct)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Product != rows[j].Product {
			return rows[i].Product < rows[j].Product
		}
		return rows[i].Variant < rows[j].Variant
	})
	if rows == nil {
		rows = []dto.MonthlyGrossSalesRowDTO{} // reporte vacío es salida válida, no error
	}

	report := &dto.MonthlyGrossSalesReportDTO{
		CustomerCode: req.CustomerCode,
		Customer:     uc.customerName(req.CustomerCode),
		FiscalYear:   req.FiscalYear,
		Rows:         rows,
		TotalGross:   total,
	}
	uc.cacheSet(ctx, key, report)
	return report, nil
}

// ── 2. Top mercados por venta neta ───────────────────────────────────────────

// TopMarkets mercados con mayor venta neta del año fiscal, en millones.
// Orden descendente por venta neta; empates se resuelven por nombre de
// mercado ascendente (regla determinista documentada).
func (uc *UseCase) TopMarkets(ctx context.Context, req dto.TopMarketsRequest) (*dto.TopMarketsReportDTO, error) {
	if err := validateFiscalYear(req.FiscalYear); err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n debe ser mayor que 0, recibido %d", domain.ErrInvalidParameter, req.TopN)
	}
	if topN > maxTopMarkets {
		topN = maxTopMarkets
	}

	key := fmt.Sprintf("report:top_markets:%d:%d", req.FiscalYear, topN)
	var cached dto.TopMarketsReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	totals := make(map[string]decimal.Decimal) // mercado → venta neta acumulada
	missingCustomer := 0
	for _, r := range uc.net {
		if r.FiscalYear != req.FiscalYear {
			continue
		}
		customer, ok := uc.customers[r.CustomerCode]
		if !ok {
			missingCustomer++
			continue
		}
		totals[customer.Market] = totals[customer.Market].Add(r.NetSales)
	}
	uc.warnMissing("top_markets", 0, missingCustomer)

	type marketTotal struct {
		market string
		net    decimal.Decimal
	}
	ranked := make([]marketTotal, 0, len(totals))
	for market, net := range totals {
		ranked = append(ranked, marketTotal{market, net})
	}
	// El empate se compara sobre el monto sin redondear; el redondeo es solo presentación.
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].net.Equal(ranked[j].net) {
			return ranked[i].net.GreaterThan(ranked[j].net)
		}
		return ranked[i].market < ranked[j].market
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	markets := make([]dto.TopMarketDTO, 0, len(ranked))
	for _, m := range ranked {
		markets = append(markets, dto.TopMarketDTO{
			Market:           m.market,
			NetSalesMillions: m.net.Div(million).Round(2),
		})
	}

	report := &dto.TopMarketsReportDTO{FiscalYear: req.FiscalYear, TopN: topN, Markets: markets}
	uc.cacheSet(ctx, key, report)
	return report, nil
}

// ── 3. Top productos por división (dense rank) ───────────────────────────────

// TopProductsByDivision top 3 productos por cantidad vendida en cada división.
// Dense rank: cantidades empatadas comparten rank y el siguiente valor
// distinto recibe rank+1; se excluyen los ranks mayores a 3.
func (uc *UseCase) TopProductsByDivision(ctx context.Context, fiscalYear int) (*dto.TopProductsReportDTO, error) {
	if err := validateFiscalYear(fiscalYear); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:top_products:%d", fiscalYear)
	var cached dto.TopProductsReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	// Cantidad total por (división, producto). Se agrupa por nombre de
	// producto: las variantes de un mismo producto suman juntas.
	type divProduct struct {
		division string
		product  string
	}
	totals := make(map[divProduct]decimal.Decimal)
	missingProduct := 0
	for _, r := range uc.net {
		if r.FiscalYear != fiscalYear {
			continue
		}
		product, ok := uc.products[r.ProductCode]
		if !ok {
			missingProduct++
			continue
		}
		k := divProduct{product.Division, product.Name}
		totals[k] = totals[k].Add(r.SoldQuantity)
	}
	uc.warnMissing("top_products", missingProduct, 0)

	// Agrupar por división y rankear cada grupo por separado.
	type productTotal struct {
		product string
		qty     decimal.Decimal
	}
	byDivision := make(map[string][]productTotal)
	for k, qty := range totals {
		byDivision[k.division] = append(byDivision[k.division], productTotal{k.product, qty})
	}

	divisions := make([]string, 0, len(byDivision))
	for d := range byDivision {
		divisions = append(divisions, d)
	}
	sort.Strings(divisions)

	rows := make([]dto.DivisionProductDTO, 0)
	for _, division := range divisions {
		group := byDivision[division]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].qty.Equal(group[j].qty) {
				return group[i].qty.GreaterThan(group[j].qty)
			}
			return group[i].product < group[j].product
		})

		rank := 0
		var prevQty decimal.Decimal
		for i, p := range group {
			if i == 0 || !p.qty.Equal(prevQty) {
				rank++ // dense rank: solo avanza en valores distintos
				prevQty = p.qty
			}
			if rank > topProductsRank {
				break
			}
			rows = append(rows, dto.DivisionProductDTO{
				Division:      division,
				Rank:          rank,
				Product:       p.product,
				TotalQuantity: p.qty,
			})
		}
	}

	report := &dto.TopProductsReportDTO{FiscalYear: fiscalYear, Rows: rows}
	uc.cacheSet(ctx, key, report)
	return report, nil
}

// ── 4. Participación regional en ventas netas ────────────────────────────────

// RegionalNetSalesShare venta neta por cliente con su % de participación
// dentro de su región. La suma del porcentaje dentro de cada región es 100
// (agregado particionado por región, no global).
func (uc *UseCase) RegionalNetSalesShare(ctx context.Context, fiscalYear int) (*dto.RegionalShareReportDTO, error) {
	if err := validateFiscalYear(fiscalYear); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:regional_share:%d", fiscalYear)
	var cached dto.RegionalShareReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	// Venta neta total por cliente.
	totals := make(map[string]decimal.Decimal)
	missingCustomer := 0
	for _, r := range uc.net {
		if r.FiscalYear != fiscalYear {
			continue
		}
		if _, ok := uc.customers[r.CustomerCode]; !ok {
			missingCustomer++
			continue
		}
		totals[r.CustomerCode] = totals[r.CustomerCode].Add(r.NetSales)
	}
	uc.warnMissing("regional_share", 0, missingCustomer)

	type customerTotal struct {
		region   string
		customer string
		net      decimal.Decimal
	}
	entries := make([]customerTotal, 0, len(totals))
	regionTotals := make(map[string]decimal.Decimal)
	for code, net := range totals {
		c := uc.customers[code]
		entries = append(entries, customerTotal{c.Region, c.Name, net})
		regionTotals[c.Region] = regionTotals[c.Region].Add(net)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].region != entries[j].region {
			return entries[i].region < entries[j].region
		}
		if !entries[i].net.Equal(entries[j].net) {
			return entries[i].net.GreaterThan(entries[j].net)
		}
		return entries[i].customer < entries[j].customer
	})

	rows := make([]dto.RegionalShareRowDTO, 0, len(entries))
	for _, e := range entries {
		pct := decimal.Zero
		if regionTotals[e.region].IsPositive() {
			pct = e.net.Mul(hundred).Div(regionTotals[e.region]).Round(2)
		}
		rows = append(rows, dto.RegionalShareRowDTO{
			Region:           e.region,
			Customer:         e.customer,
			NetSalesMillions: e.net.Div(million).Round(2),
			PctShare:         pct,
		})
	}

	report := &dto.RegionalShareReportDTO{FiscalYear: fiscalYear, Rows: rows}
	uc.cacheSet(ctx, key, report)
	return report, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func validateFiscalYear(fy int) error {
	if fy <= 0 {
		return fmt.Errorf("%w: fiscal_year debe ser mayor que 0, recibido %d", domain.ErrInvalidParameter, fy)
	}
	return nil
}

func (uc *UseCase) customerName(code string) string {
	if c, ok := uc.customers[code]; ok {
		return c.Name
	}
	return code
}

func (uc *UseCase) cacheGet(ctx context.Context, key string, dest any) bool {
	if uc.cache == nil {
		return false
	}
	return uc.cache.Get(ctx, key, dest)
}

func (uc *UseCase) cacheSet(ctx context.Context, key string, value any) {
	if uc.cache != nil {
		uc.cache.Set(ctx, key, value)
	}
}

// warnMissing registra filas descartadas por dimensiones o precios faltantes
// durante la generación de un reporte.
func (uc *UseCase) warnMissing(report string, missingPrice, missingDim int) {
	if missingPrice > 0 {
		uc.log.Warn().Str("reporte", report).Int("lineas", missingPrice).
			Msg("líneas sin precio bruto para su año fiscal excluidas")
	}
	if missingDim > 0 {
		uc.log.Warn().Str("reporte", report).Int("lineas", missingDim).
			Msg("líneas sin dimensión asociada excluidas")
	}
}
