package about

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const wordWrap = 80

const page = `# dum dum

dum dum is an investment agent running as a set of processes on the ao
compute network. This client talks to them directly from the terminal.

## What it does

- **Recurring investments**: pick an input and an output token, an amount
  and a day of the month. The main process buys on your behalf every month.
- **Arbitrage agent**: configure slippage and an allowance, then start or
  stop the agent that trades between two tokens.
- **Test tokens**: mint up to 100 test tokens from the faucet into your
  personal process.

## Getting started

1. ` + "`dumdum wallet new`" + ` creates a wallet and prints its recovery phrase once.
2. ` + "`dumdum wallet connect`" + ` connects it for this and later invocations.
3. ` + "`dumdum onboard`" + ` registers the wallet and provisions your process.
4. ` + "`dumdum mint --amount 10`" + ` funds it with test tokens.
5. ` + "`dumdum invest`" + ` or ` + "`dumdum arbitrage start`" + ` puts them to work.

Every write is signed by your wallet and asks for approval unless ` + "`--yes`" + `
is given.
`

// Markdown returns the about page source.
func Markdown() string {
	return page
}

// Render renders the about page for a terminal. style is a glamour style
// name; empty picks one from the terminal background.
func Render(style string) (string, error) {
	options := []glamour.TermRendererOption{glamour.WithWordWrap(wordWrap)}
	if style == "" {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(page)
	if err != nil {
		return "", fmt.Errorf("render about page: %w", err)
	}

	return out, nil
}
