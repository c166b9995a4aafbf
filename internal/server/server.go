// Package server exposes the projection engine over HTTP. Requests carry a
// full scenario, either as JSON or as an uploaded YAML configuration, and
// responses mirror the engine result together with advisory warnings.
package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/ostolop/rent-vs-buy/internal/config"
	"github.com/ostolop/rent-vs-buy/internal/projection"
	"github.com/ostolop/rent-vs-buy/pkg/constants"
	"github.com/ostolop/rent-vs-buy/pkg/output"
	"github.com/ostolop/rent-vs-buy/pkg/validation"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	reports     *reportStore
}

// NewHandler constructs the HTTP handler that serves the analysis API.
func NewHandler(logger *zap.Logger, maxBodySize int64, allowedOrigins []string, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{constants.DefaultAllowedOrigin}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		reports:     newReportStore(),
	}

	mux := http.NewServeMux()

	// One-shot analysis (JSON body or uploaded YAML configuration)
	mux.HandleFunc("/api/analyze", h.handleAnalyze)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Saved reports, kept in memory for the lifetime of the process
	mux.HandleFunc("/api/reports", h.handleReports)
	mux.HandleFunc("/api/reports/", h.handleReportByID)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(mux)
}

// analyzeRequest mirrors the engine inputs. Rates are decimal fractions
// (0.045 for 4.5%), unlike the YAML configuration format which uses
// percentages. The three room rental fields must be set together.
type analyzeRequest struct {
	Buy    buyRequest    `json:"buy"`
	Rent   rentRequest   `json:"rent"`
	Common commonRequest `json:"common"`
	Policy policyRequest `json:"policy"`
}

type buyRequest struct {
	PropertyValue        float64  `json:"propertyValue"`
	Deposit              float64  `json:"deposit"`
	LoanAmount           float64  `json:"loanAmount"`
	MortgageRate         float64  `json:"mortgageRate"`
	LoanTermYears        int      `json:"loanTermYears"`
	ConveyancingFees     float64  `json:"conveyancingFees"`
	SellingAgentFeeRate  float64  `json:"sellingAgentFeeRate"`
	AppreciationRate     float64  `json:"appreciationRate"`
	InvestmentReturnRate float64  `json:"investmentReturnRate"`
	RenovationCost       float64  `json:"renovationCost"`
	FurnitureCost        float64  `json:"furnitureCost"`
	AnnualInsurance      float64  `json:"annualInsurance"`
	RoomMonthlyRent      *float64 `json:"roomMonthlyRent,omitempty"`
	RoomAnnualIncrease   *float64 `json:"roomAnnualIncrease,omitempty"`
	RoomMonthsPerYear    *int     `json:"roomMonthsPerYear,omitempty"`
	SecondHome           bool     `json:"secondHome"`
	CGTRate              float64  `json:"cgtRate"`
}

type rentRequest struct {
	MonthlyRent    float64 `json:"monthlyRent"`
	AnnualIncrease float64 `json:"annualIncrease"`
}

type commonRequest struct {
	MonthlyUtilities float64 `json:"monthlyUtilities"`
	SellAfterYears   int     `json:"sellAfterYears"`
	ChildLivingYears int     `json:"childLivingYears"`
}

type policyRequest struct {
	BalanceConvention string `json:"balanceConvention"`
	CGT               string `json:"cgt"`
	EquityInVerdict   bool   `json:"equityInVerdict"`
}

// analysisInputs groups the four engine input sets after decoding.
type analysisInputs struct {
	buy    projection.BuyScenario
	rent   projection.RentScenario
	common projection.CommonParams
	policy projection.Policy
}

type analyzeResponse struct {
	StampDuty              float64             `json:"stampDuty"`
	MonthlyMortgagePayment float64             `json:"monthlyMortgagePayment"`
	Buy                    []yearValue         `json:"buy"`
	Rent                   []yearValue         `json:"rent"`
	TotalBuyCashFlow       float64             `json:"totalBuyCashFlow"`
	TotalRentCashFlow      float64             `json:"totalRentCashFlow"`
	BuyNPV                 float64             `json:"buyNpv"`
	RentNPV                float64             `json:"rentNpv"`
	Sale                   saleValue           `json:"sale"`
	Recommendation         recommendationValue `json:"recommendation"`
	CSV                    string              `json:"csv"`
	Warnings               []string            `json:"warnings,omitempty"`
	Duration               string              `json:"duration"`
}

type yearValue struct {
	Year              int                `json:"year"`
	CashFlow          float64            `json:"cashFlow"`
	Components        map[string]float64 `json:"components,omitempty"`
	BankBalance       float64            `json:"bankBalance"`
	PropertyValue     *float64           `json:"propertyValue,omitempty"`
	MortgageBalance   *float64           `json:"mortgageBalance,omitempty"`
	Equity            *float64           `json:"equity,omitempty"`
	InterestPaid      *float64           `json:"interestPaid,omitempty"`
	PrincipalPaid     *float64           `json:"principalPaid,omitempty"`
	InvestmentBalance *float64           `json:"investmentBalance,omitempty"`
}

type saleValue struct {
	SellingPrice      float64 `json:"sellingPrice"`
	AgentFees         float64 `json:"agentFees"`
	MortgageRepaid    float64 `json:"mortgageRepaid"`
	OriginalCost      float64 `json:"originalCost"`
	CapitalGain       float64 `json:"capitalGain"`
	InterestDeduction float64 `json:"interestDeduction"`
	TaxableGain       float64 `json:"taxableGain"`
	CapitalGainsTax   float64 `json:"capitalGainsTax"`
	NetProceeds       float64 `json:"netProceeds"`
}

type recommendationValue struct {
	Verdict          string   `json:"verdict"`
	BalanceAdvantage float64  `json:"balanceAdvantage"`
	NPVVerdict       string   `json:"npvVerdict"`
	NPVAdvantage     float64  `json:"npvAdvantage"`
	BreakEvenYear    int      `json:"breakEvenYear"`
	Summary          []string `json:"summary,omitempty"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	inputs, warnings, ok := h.decodeAnalyzeBody(w, r, "server.handleAnalyze")
	if !ok {
		return
	}

	h.runAnalysis(w, inputs, warnings, start, "server.handleAnalyze")
}

// decodeAnalyzeBody reads the request body as either a YAML configuration
// (the same format the CLI consumes) or the JSON scenario payload, selected
// by Content-Type.
func (h *handler) decodeAnalyzeBody(w http.ResponseWriter, r *http.Request, op string) (analysisInputs, []string, bool) {
	if isYAMLRequest(r.Header.Get("Content-Type")) {
		cfg, err := config.LoadConfigurationFromReader(r.Body)
		if err != nil {
			h.respondBodyError(w, err, op)
			return analysisInputs{}, nil, false
		}

		warnings := cfg.ValidateConfiguration()
		buy, rent, common, policy, err := cfg.Scenario.ToProjectionInputs()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return analysisInputs{}, nil, false
		}
		return analysisInputs{buy: buy, rent: rent, common: common, policy: policy}, warnings, true
	}

	var req analyzeRequest
	if !h.decodeJSONBody(w, r, &req, op) {
		return analysisInputs{}, nil, false
	}

	buy, rent, common, policy, err := req.toProjectionInputs()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return analysisInputs{}, nil, false
	}
	return analysisInputs{buy: buy, rent: rent, common: common, policy: policy}, req.warnings(), true
}

func isYAMLRequest(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	switch mediaType {
	case "application/x-yaml", "application/yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}

// toProjectionInputs converts the request into engine inputs. The room
// rental fields are all-or-nothing; the loan amount is derived from the
// property value and deposit when omitted.
func (req *analyzeRequest) toProjectionInputs() (projection.BuyScenario, projection.RentScenario, projection.CommonParams, projection.Policy, error) {
	buy := projection.BuyScenario{
		PropertyValue:        req.Buy.PropertyValue,
		Deposit:              req.Buy.Deposit,
		LoanAmount:           req.Buy.LoanAmount,
		MortgageRate:         req.Buy.MortgageRate,
		LoanTermYears:        req.Buy.LoanTermYears,
		ConveyancingFees:     req.Buy.ConveyancingFees,
		SellingAgentFeeRate:  req.Buy.SellingAgentFeeRate,
		AppreciationRate:     req.Buy.AppreciationRate,
		InvestmentReturnRate: req.Buy.InvestmentReturnRate,
		RenovationCost:       req.Buy.RenovationCost,
		FurnitureCost:        req.Buy.FurnitureCost,
		AnnualInsurance:      req.Buy.AnnualInsurance,
		SecondHome:           req.Buy.SecondHome,
		CGTRate:              req.Buy.CGTRate,
	}

	roomFields := 0
	if req.Buy.RoomMonthlyRent != nil {
		roomFields++
	}
	if req.Buy.RoomAnnualIncrease != nil {
		roomFields++
	}
	if req.Buy.RoomMonthsPerYear != nil {
		roomFields++
	}
	switch roomFields {
	case 0:
	case 3:
		buy.RoomRental = &projection.RoomRental{
			MonthlyRent:    *req.Buy.RoomMonthlyRent,
			AnnualIncrease: *req.Buy.RoomAnnualIncrease,
			MonthsPerYear:  *req.Buy.RoomMonthsPerYear,
		}
	default:
		return projection.BuyScenario{}, projection.RentScenario{}, projection.CommonParams{}, projection.Policy{},
			fmt.Errorf("roomMonthlyRent, roomAnnualIncrease and roomMonthsPerYear must be set together")
	}

	if buy.LoanAmount == 0 {
		buy.LoanAmount = buy.PropertyValue - buy.Deposit
	}

	rent := projection.RentScenario{
		MonthlyRent:    req.Rent.MonthlyRent,
		AnnualIncrease: req.Rent.AnnualIncrease,
	}
	common := projection.CommonParams{
		MonthlyUtilities: req.Common.MonthlyUtilities,
		SellAfterYears:   req.Common.SellAfterYears,
		ChildLivingYears: req.Common.ChildLivingYears,
	}
	policy := projection.Policy{
		BalanceConvention: projection.BalanceConvention(req.Policy.BalanceConvention),
		CGT:               projection.CGTPolicy(req.Policy.CGT),
		EquityInVerdict:   req.Policy.EquityInVerdict,
	}

	return buy, rent, common, policy, nil
}

// warnings builds the same advisory warnings the configuration loader
// produces, scaled back to percentages where the builders expect them.
func (req *analyzeRequest) warnings() []string {
	var warnings []string

	if warning := validation.ValidateOccupancyWindow(req.Common.ChildLivingYears, req.Common.SellAfterYears); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateLoanTerm(req.Buy.LoanTermYears, req.Common.SellAfterYears); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateCGTConfig(req.Buy.CGTRate*constants.PercentageMultiplier, req.Buy.SecondHome, req.Policy.CGT); warning != "" {
		warnings = append(warnings, warning)
	}
	roomConfigured := req.Buy.RoomMonthlyRent != nil || req.Buy.RoomAnnualIncrease != nil || req.Buy.RoomMonthsPerYear != nil
	if warning := validation.ValidateRoomRental(roomConfigured, req.Common.ChildLivingYears); warning != "" {
		warnings = append(warnings, warning)
	}

	return warnings
}

func (h *handler) runAnalysis(w http.ResponseWriter, inputs analysisInputs, warnings []string, start time.Time, op string) {
	result, err := projection.Run(h.logger, inputs.buy, inputs.rent, inputs.common, inputs.policy)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	response := buildAnalyzeResponse(result, warnings, elapsed)

	if h.logger != nil {
		h.logger.Info("analysis computed",
			zap.String("op", op),
			zap.Int("horizonYears", inputs.common.SellAfterYears),
			zap.String("verdict", result.Recommendation.Verdict),
			zap.Duration("duration", elapsed),
		)
	}

	h.writeJSON(w, http.StatusOK, response)
}

func buildAnalyzeResponse(result *projection.Result, warnings []string, elapsed time.Duration) analyzeResponse {
	return analyzeResponse{
		StampDuty:              result.StampDuty,
		MonthlyMortgagePayment: result.MonthlyMortgagePayment,
		Buy:                    buildBuyYears(result.Buy),
		Rent:                   buildRentYears(result.Rent),
		TotalBuyCashFlow:       result.TotalBuyCashFlow,
		TotalRentCashFlow:      result.TotalRentCashFlow,
		BuyNPV:                 result.BuyNPV,
		RentNPV:                result.RentNPV,
		Sale:                   buildSaleValue(result.Sale),
		Recommendation:         buildRecommendationValue(result.Recommendation),
		CSV:                    output.CsvString(result),
		Warnings:               warnings,
		Duration:               elapsed.String(),
	}
}

func buildBuyYears(records []projection.YearRecord) []yearValue {
	years := make([]yearValue, 0, len(records))
	for _, record := range records {
		propertyValue := record.PropertyValue
		mortgageBalance := record.MortgageBalance
		equity := record.Equity
		interestPaid := record.InterestPaid
		principalPaid := record.PrincipalPaid

		years = append(years, yearValue{
			Year:            record.Year,
			CashFlow:        record.CashFlow,
			Components:      record.Components,
			BankBalance:     record.BankBalance,
			PropertyValue:   &propertyValue,
			MortgageBalance: &mortgageBalance,
			Equity:          &equity,
			InterestPaid:    &interestPaid,
			PrincipalPaid:   &principalPaid,
		})
	}
	return years
}

func buildRentYears(records []projection.YearRecord) []yearValue {
	years := make([]yearValue, 0, len(records))
	for _, record := range records {
		investmentBalance := record.InvestmentBalance

		years = append(years, yearValue{
			Year:              record.Year,
			CashFlow:          record.CashFlow,
			Components:        record.Components,
			BankBalance:       record.BankBalance,
			InvestmentBalance: &investmentBalance,
		})
	}
	return years
}

func buildSaleValue(sale projection.SaleSummary) saleValue {
	return saleValue{
		SellingPrice:      sale.SellingPrice,
		AgentFees:         sale.AgentFees,
		MortgageRepaid:    sale.MortgageRepaid,
		OriginalCost:      sale.OriginalCost,
		CapitalGain:       sale.CapitalGain,
		InterestDeduction: sale.InterestDeduction,
		TaxableGain:       sale.TaxableGain,
		CapitalGainsTax:   sale.CapitalGainsTax,
		NetProceeds:       sale.NetProceeds,
	}
}

func buildRecommendationValue(rec projection.Recommendation) recommendationValue {
	return recommendationValue{
		Verdict:          rec.Verdict,
		BalanceAdvantage: rec.BalanceAdvantage,
		NPVVerdict:       rec.NPVVerdict,
		NPVAdvantage:     rec.NPVAdvantage,
		BreakEvenYear:    rec.BreakEvenYear,
		Summary:          rec.Summary,
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req analyzeRequest
	if !h.decodeJSONBody(w, r, &req, "server.handleConfigExport") {
		return
	}

	yamlBytes, err := yaml.Marshal(req.toConfiguration())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// toConfiguration renders the request as a configuration file payload,
// converting decimal fractions back to the percentages the file format uses.
func (req *analyzeRequest) toConfiguration() *config.Configuration {
	buy := config.BuyConfig{
		PropertyValue:        req.Buy.PropertyValue,
		Deposit:              req.Buy.Deposit,
		LoanAmount:           req.Buy.LoanAmount,
		MortgageRate:         rateToPercent(req.Buy.MortgageRate),
		LoanTermYears:        req.Buy.LoanTermYears,
		ConveyancingFees:     req.Buy.ConveyancingFees,
		SellingAgentFee:      rateToPercent(req.Buy.SellingAgentFeeRate),
		AppreciationRate:     rateToPercent(req.Buy.AppreciationRate),
		InvestmentReturnRate: rateToPercent(req.Buy.InvestmentReturnRate),
		RenovationCost:       req.Buy.RenovationCost,
		FurnitureCost:        req.Buy.FurnitureCost,
		AnnualInsurance:      req.Buy.AnnualInsurance,
		SecondHome:           req.Buy.SecondHome,
		CGTRate:              rateToPercent(req.Buy.CGTRate),
	}
	if req.Buy.RoomMonthlyRent != nil && req.Buy.RoomAnnualIncrease != nil && req.Buy.RoomMonthsPerYear != nil {
		buy.RoomRental = &config.RoomRentalConfig{
			MonthlyRent:    *req.Buy.RoomMonthlyRent,
			AnnualIncrease: rateToPercent(*req.Buy.RoomAnnualIncrease),
			MonthsPerYear:  *req.Buy.RoomMonthsPerYear,
		}
	}

	return &config.Configuration{
		Scenario: config.ScenarioConfig{
			Buy: buy,
			Rent: config.RentConfig{
				MonthlyRent:    req.Rent.MonthlyRent,
				AnnualIncrease: rateToPercent(req.Rent.AnnualIncrease),
			},
			Common: config.CommonConfig{
				MonthlyUtilities: req.Common.MonthlyUtilities,
				SellAfterYears:   req.Common.SellAfterYears,
				ChildLivingYears: req.Common.ChildLivingYears,
			},
			Policy: config.PolicyConfig{
				BalanceConvention: req.Policy.BalanceConvention,
				CGT:               req.Policy.CGT,
				EquityInVerdict:   req.Policy.EquityInVerdict,
			},
		},
		Logging: config.LoggingConfig{Level: "info", Format: "console"},
		Output:  config.OutputConfig{Format: constants.OutputFormatPretty},
	}
}

func rateToPercent(rate float64) float64 {
	return rate * constants.PercentageMultiplier
}

// decodeJSONBody drains the size-limited body before unmarshaling so an
// exceeded limit always surfaces as the reader's error, never as a JSON
// syntax error on a truncated payload.
func (h *handler) decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondBodyError(w, err, op)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		h.respondBodyError(w, err, op)
		return false
	}
	return true
}

// respondBodyError distinguishes an oversized body from a malformed one.
func (h *handler) respondBodyError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("analysis request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
