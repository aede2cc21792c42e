package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"t-convert/internals/core/domain"
	"t-convert/internals/helpers"
	"t-convert/internals/service"

	"github.com/shopspring/decimal"
)

// Catalog is the currency catalog as seen by the menu.
type Catalog interface {
	Refresh(ctx context.Context) error
	Contains(code domain.Currency) bool
	List() []domain.CurrencyInfo
	Len() int
	FetchedAt() time.Time
}

type state int

const (
	stateMainMenu state = iota
	stateConverting
	stateBrowsing
	stateExitConfirm
	stateDone
)

func (s state) String() string {
	switch s {
	case stateMainMenu:
		return "main_menu"
	case stateConverting:
		return "converting"
	case stateBrowsing:
		return "browsing"
	case stateExitConfirm:
		return "exit_confirm"
	case stateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Main menu and post-conversion menu entries.
const (
	choiceConvert = 1
	choiceBrowse  = 2
	choiceExit    = 3

	choiceAgain    = 1
	choiceMainMenu = 2
)

// InteractionLoop is the menu state machine. It starts in the main menu and
// ends when the user confirms exit or input runs out.
type InteractionLoop struct {
	display Display
	catalog Catalog
	service service.ConversionService
	now     func() time.Time
}

type LoopOption func(*InteractionLoop)

// WithLoopClock overrides the clock used to resolve "today".
func WithLoopClock(now func() time.Time) LoopOption {
	return func(l *InteractionLoop) { l.now = now }
}

func NewInteractionLoop(display Display, catalog Catalog, svc service.ConversionService, opts ...LoopOption) *InteractionLoop {
	l := &InteractionLoop{
		display: display,
		catalog: catalog,
		service: svc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run drives the menu until the user exits. End of input is a normal exit; any
// other input failure is returned.
func (l *InteractionLoop) Run(ctx context.Context) error {
	current := stateMainMenu
	for current != stateDone {
		var (
			next state
			err  error
		)
		switch current {
		case stateMainMenu:
			next, err = l.mainMenu(ctx)
		case stateConverting:
			next, err = l.converting(ctx)
		case stateBrowsing:
			next, err = l.browsing()
		case stateExitConfirm:
			next, err = l.exitConfirm()
		default:
			return fmt.Errorf("unknown menu state %s", current)
		}
		if errors.Is(err, io.EOF) {
			slog.Debug("Input closed, leaving menu", "state", current)
			return nil
		}
		if err != nil {
			return fmt.Errorf("menu %s: %w", current, err)
		}
		slog.Debug("Menu transition", "from", current, "to", next)
		current = next
	}
	return nil
}

func (l *InteractionLoop) mainMenu(ctx context.Context) (state, error) {
	if err := l.catalog.Refresh(ctx); err != nil {
		slog.Warn("Currency catalog refresh failed", "error", err)
		l.display.Error(fmt.Sprintf("Failed to load supported currencies: %v", err))
	}

	l.display.Show("%s", banner)
	l.display.Heading(titleLine)
	l.display.Heading(title)
	l.display.Heading(titleLine)
	l.display.Show("")
	l.display.Show("Welcome to T-Convert!")
	if n := l.catalog.Len(); n > 0 {
		l.display.Show("%d currencies available (updated %s)", n, l.catalog.FetchedAt().Local().Format("2006-01-02 15:04"))
	} else {
		l.display.Notice("Supported currencies are currently unavailable.")
	}
	l.display.Show("")
	l.display.Show("Please select an option:")
	l.display.Show("1. Convert Currency")
	l.display.Show("2. View Supported Currencies")
	l.display.Show("3. Exit")
	l.display.Show("")

	choice, err := l.promptChoice()
	if err != nil {
		return stateMainMenu, err
	}
	switch choice {
	case choiceConvert:
		return stateConverting, nil
	case choiceBrowse:
		return stateBrowsing, nil
	}
	return stateExitConfirm, nil
}

func (l *InteractionLoop) converting(ctx context.Context) (state, error) {
	if l.catalog.Len() == 0 {
		l.display.Error("No supported currencies loaded, cannot convert right now.")
		return stateMainMenu, nil
	}

	for {
		req, err := l.collectInputs()
		if err != nil {
			return stateConverting, err
		}

		res, err := l.service.PerformConversion(ctx, req)
		if err != nil {
			l.showError(err)
		} else {
			l.showResult(res)
		}

		l.display.Show("")
		l.display.Show("Options")
		l.display.Show("1. Perform another conversion")
		l.display.Show("2. Back to the main menu")
		l.display.Show("3. Exit")
		l.display.Show("")
		choice, err := l.promptChoice()
		if err != nil {
			return stateConverting, err
		}
		switch choice {
		case choiceAgain:
			continue
		case choiceMainMenu:
			l.display.Show("Returning to the main menu...")
			return stateMainMenu, nil
		}
		return stateExitConfirm, nil
	}
}

func (l *InteractionLoop) collectInputs() (domain.ConversionRequest, error) {
	var (
		req domain.ConversionRequest
		err error
	)
	if req.From, err = l.promptCurrency("source"); err != nil {
		return req, err
	}
	if req.To, err = l.promptCurrency("target"); err != nil {
		return req, err
	}
	if req.Amount, err = l.promptAmount(); err != nil {
		return req, err
	}
	if req.Date, err = l.promptDate(); err != nil {
		return req, err
	}
	return req, nil
}

func (l *InteractionLoop) promptCurrency(kind string) (domain.Currency, error) {
	for {
		input, err := l.display.Prompt(fmt.Sprintf("Please select your %s currency (e.g., GBP, USD, EUR):", kind))
		if err != nil {
			return "", err
		}
		code := helpers.ParseCurrencyCode(input)
		switch {
		case code == "":
			l.display.Error(fmt.Sprintf("Please enter a valid %s currency code.", kind))
		case !l.catalog.Contains(code):
			l.display.Error(fmt.Sprintf("Invalid %s currency code.", kind))
		default:
			return code, nil
		}
	}
}

func (l *InteractionLoop) promptAmount() (float64, error) {
	for {
		input, err := l.display.Prompt("Enter the amount to convert:")
		if err != nil {
			return 0, err
		}
		amount, err := helpers.ParseAmount(input)
		if err != nil {
			l.display.Error("Invalid input. Please enter a positive amount using digits and at most one '.'.")
			continue
		}
		return amount, nil
	}
}

func (l *InteractionLoop) promptDate() (string, error) {
	for {
		input, err := l.display.Prompt("Enter the date for exchange rates (YYYY-MM-DD or type 'today' for current date):")
		if err != nil {
			return "", err
		}
		date, err := helpers.ResolveDateInput(input, l.now())
		if err != nil {
			l.display.Error("Invalid date format. Please use YYYY-MM-DD format or type 'today'.")
			continue
		}
		return date, nil
	}
}

// promptChoice re-prompts until the input is one of the three menu entries.
func (l *InteractionLoop) promptChoice() (int, error) {
	for {
		input, err := l.display.Prompt(fmt.Sprintf("Enter your choice (%d-%d):", helpers.MinChoice, helpers.MaxChoice))
		if err != nil {
			return 0, err
		}
		choice, err := helpers.ParseMenuChoice(input)
		if err != nil {
			l.display.Error(fmt.Sprintf("Invalid input. Please enter a valid choice (%d-%d).", helpers.MinChoice, helpers.MaxChoice))
			continue
		}
		return choice, nil
	}
}

func (l *InteractionLoop) showResult(res *domain.ConversionResult) {
	amount := twoDigits(res.Amount)
	converted := twoDigits(res.ConvertedAmount)

	l.display.Show("")
	l.display.Heading("Conversion Result:")
	l.display.Show("%s", ruleLine)
	l.display.Show("%s %s is equal to %s %s on %s", amount, res.From, converted, res.To, res.Date)
	l.display.Show("Converted: %s %s = %s %s", amount, res.From, converted, res.To)
	l.display.Show("Exchange Rate: 1 %s = %s %s", res.From, decimal.NewFromFloat(res.Rate).StringFixed(4), res.To)
	l.display.Show("Date: %s", res.Date)
	l.display.Show("Last updated: %s", res.FetchedAt.Local().Format("2006-01-02 15:04 MST"))
	l.display.Show("%s", ruleLine)
}

func (l *InteractionLoop) showError(err error) {
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &apiErr):
		l.display.Error("Failed to fetch exchange rates.")
		l.display.Show("Error Result:")
		l.display.Show("%s", ruleLine)
		l.display.Show("Error: %s", apiErr.Code)
		l.display.Show("Description: %s", apiErr.Description)
		l.display.Show("%s", ruleLine)
	case domain.IsValidation(err):
		l.display.Error(err.Error())
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrUnexpectedStatus):
		l.display.Error("Failed to parse exchange rate data from API response.")
		l.display.Show("API Response: %v", err)
	default:
		l.display.Error(fmt.Sprintf("Failed to fetch exchange rates: %v", err))
	}
}

func (l *InteractionLoop) browsing() (state, error) {
	currencies := l.catalog.List()
	if len(currencies) == 0 {
		l.display.Error("No supported currencies available.")
	}
	l.display.Heading("Supported Currencies:")
	for _, c := range currencies {
		if c.Code == "" || c.Name == "" {
			continue
		}
		l.display.Show("%s - %s", c.Code, c.Name)
	}
	l.display.Show("")
	if err := l.display.WaitForKey("Press any key to return to the main menu..."); err != nil {
		return stateBrowsing, err
	}
	return stateMainMenu, nil
}

func (l *InteractionLoop) exitConfirm() (state, error) {
	for {
		input, err := l.display.Prompt("Are you sure you want to exit? (Y/N):")
		if err != nil {
			return stateExitConfirm, err
		}
		exit, err := helpers.ParseConfirmation(input)
		if err != nil {
			l.display.Error("Invalid choice. Please enter 'Y' or 'N'.")
			continue
		}
		if !exit {
			l.display.Show("Returning to the main menu...")
			return stateMainMenu, nil
		}
		l.display.Show("")
		l.display.Heading(goodbyeLine)
		l.display.Heading(titleLine)
		return stateDone, nil
	}
}

func twoDigits(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
