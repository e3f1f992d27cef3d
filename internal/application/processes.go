package application

// Processes names the remote processes the flows talk to.
type Processes struct {
	Main      string
	Arbitrage string
	Faucet    string
}

// Tag names understood by the main, arbitrage and faucet processes.
const (
	tagWalletAddress    = "Wallet_Address"
	tagProcessID        = "Process_ID"
	tagInputTokenAddr   = "iToken_Address"
	tagOutputTokenAddr  = "oToken_Address"
	tagNumberOfTokens   = "numberOfTokens"
	tagRecurringDay     = "RecurringDay"
	tagPlanID           = "Plan_ID"
	tagInputToken       = "InputToken"
	tagTargetToken      = "TargetToken"
	tagSlippage         = "Slippage"
	tagInputTokenAmount = "InputTokenAmount"
	tagOriginalSender   = "OriginalSender"
	tagQuantity         = "Quantity"
	tagRecipient        = "Recipient"

	actionGetUser            = "getUser"
	actionAddUser            = "addUser"
	actionGetInvestmentPlans = "getInvestmentPlans"
	actionAddInvestmentPlan  = "addInvestmentPlan"
	actionStatus             = "Status"
	actionSetup              = "Setup"
	actionStart              = "Start"
	actionStop               = "Stop"
	actionRequestTokens      = "RequestTokens"
)
