package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"t-convert/internals/core/domain"
	"t-convert/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handler struct {
	table *RateTable
	now   func() time.Time
}

func NewHandler(table *RateTable) *Handler {
	return &Handler{table: table, now: time.Now}
}

// ErrorResponse mirrors the service's failure envelope.
type ErrorResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Description string `json:"description"`
}

type ConvertQuery struct {
	From   domain.Currency `json:"from"`
	To     domain.Currency `json:"to"`
	Amount float64         `json:"amount"`
}

type ConvertInfo struct {
	Rate      float64 `json:"rate"`
	Timestamp int64   `json:"timestamp"`
}

type ConvertResponse struct {
	Success    bool         `json:"success"`
	Query      ConvertQuery `json:"query"`
	Info       ConvertInfo  `json:"info"`
	Historical bool         `json:"historical"`
	Date       string       `json:"date"`
	Result     float64      `json:"result"`
}

func failure(c *fiber.Ctx, status int, code, description string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: code, Description: description})
}

// ErrorHandler renders errors that escaped a handler in the failure envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	slog.Warn("Error handling request", "path", c.Path(), "error", err)

	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return failure(c, code, strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_"), message)
}

// RequireAPIKey accepts either "Authorization: Bearer <key>" or ?api_key=.
// An empty key disables the check.
func RequireAPIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}
		provided := c.Query("api_key")
		if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			provided = strings.TrimPrefix(auth, "Bearer ")
		}
		if provided != key {
			return failure(c, fiber.StatusUnauthorized, "invalid_api_key", "The API key provided is invalid or missing.")
		}
		return c.Next()
	}
}

func (h *Handler) GetCurrencies(c *fiber.Ctx) error {
	return c.JSON(h.table.Currencies())
}

func (h *Handler) Convert(c *fiber.Ctx) error {
	from := domain.Currency(c.Query("from"))
	to := domain.Currency(c.Query("to"))
	amountStr := c.Query("amount", "1")

	if from == "" || to == "" {
		return fiber.NewError(fiber.StatusBadRequest, "from and to query parameters are required")
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		return failure(c, fiber.StatusOK, "invalid_amount", "The amount must be a positive number.")
	}

	today := helpers.Today(h.now(), time.UTC)
	date := c.Query("date", today)
	if !helpers.IsValidDateFormat(date) {
		return failure(c, fiber.StatusOK, "invalid_date", "The date must use the YYYY-MM-DD format.")
	}
	if date > today {
		return failure(c, fiber.StatusOK, "invalid_date", "Rates for future dates are not available.")
	}

	rate, ok := h.table.Rate(from, to)
	if !ok {
		unknown := from
		if _, known := h.table.Rate(from, from); known {
			unknown = to
		}
		return failure(c, fiber.StatusOK, "invalid_currency_code", fmt.Sprintf("The currency code %s is not supported.", unknown))
	}

	return c.JSON(ConvertResponse{
		Success: true,
		Query: ConvertQuery{
			From:   from,
			To:     to,
			Amount: amount.InexactFloat64(),
		},
		Info: ConvertInfo{
			Rate:      rate.InexactFloat64(),
			Timestamp: h.now().Unix(),
		},
		Historical: date < today,
		Date:       date,
		Result:     amount.Mul(rate).Round(6).InexactFloat64(),
	})
}
