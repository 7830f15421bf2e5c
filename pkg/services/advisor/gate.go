package advisor

import "strings"

// RefusalReply is sent for questions outside the finance domain, without
// spending a model call.
const RefusalReply = "This chatbot only answers finance-related questions. " +
	"Please ask about stocks, investments, budgeting, or other financial topics."

// ApologyReply is sent when the model call itself fails.
const ApologyReply = "I apologize, but I'm having trouble processing your request right now. " +
	"Please try again later."

var financeKeywords = []string{
	// stock market & investing
	"stock", "stocks", "share", "shares", "stock market", "nifty", "sensex", "bse", "nse",
	"bull market", "bear market", "ipo", "intraday", "technical analysis", "fundamental analysis",
	"blue chip stocks", "mid cap", "small cap", "large cap", "index fund", "dividends", "penny stocks",
	"short selling", "call option", "put option", "derivatives", "futures", "options", "hedging",
	"portfolio management", "market cap", "candlestick patterns", "rsi", "macd", "volume trading",
	"swing trading", "long-term investing", "day trading", "mutual funds", "etf", "reit", "sip",
	"high-frequency trading", "algo trading", "financial news", "investment strategies", "arbitrage",

	// banking & loans
	"bank", "banking", "savings account", "fixed deposit", "current account", "interest rate",
	"loan", "personal loan", "home loan", "mortgage", "credit score", "cibil score",
	"debt consolidation", "lending", "emi", "debt", "loan eligibility", "credit card", "credit limit",
	"secured loan", "unsecured loan", "gold loan", "student loan", "auto loan", "car loan",

	// personal finance & budgeting
	"budget", "budgeting", "monthly budget", "savings", "emergency fund", "financial goals",
	"spending habits", "expense tracking", "income", "salary", "passive income", "side hustle",
	"financial independence", "early retirement", "fire movement", "cash flow", "financial discipline",
	"saving money", "money management", "frugal living", "how to save", "where to invest",
	"cost-cutting", "money-saving tips", "wealth building", "financial freedom",

	// investment types & wealth growth
	"investment", "investing", "compounding", "roi", "net worth", "risk management", "capital gains",
	"asset allocation", "real estate investing", "gold investment", "silver investment",
	"cryptocurrency", "bitcoin", "ethereum", "altcoins", "stablecoins", "nft", "blockchain",

	// economy & macroeconomics
	"inflation", "deflation", "gdp", "economic growth", "recession", "depression", "stagflation",
	"fiscal policy", "monetary policy", "central bank", "rbi", "fed", "federal reserve",
	"repo rate", "reverse repo rate", "yield curve", "interest rates", "exchange rate",
	"forex", "currency trading", "bond market", "government bonds", "treasury bonds",

	// retirement & taxation
	"retirement planning", "401k", "pension", "nps", "epf", "ppf", "gratuity", "tax planning",
	"income tax", "capital gains tax", "tax benefits", "tax deductions", "gst", "tds", "tax rebate",
	"financial advisor", "investment planner", "wealth management", "estate planning", "inheritance",

	// miscellaneous
	"money", "finance", "financial literacy", "money problems", "how to invest", "financial tips",
	"financial security", "how to manage money", "best investments", "economic trends",
	"financial crisis", "insurance", "health insurance", "life insurance", "term insurance",
	"ulip", "annuity", "policyholder", "premium", "financial fraud", "ponzi schemes",
	"how to avoid financial scams", "digital payments", "upi", "neft", "rtgs", "imps",
	"payment gateways", "online banking",
}

// IsFinanceRelated reports whether question touches any known finance topic.
// Matching is a case-insensitive substring scan over the keyword list.
func IsFinanceRelated(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range financeKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// FormatReply strips the model's markdown emphasis for plain display: bold
// markers vanish and single asterisks become bullet points.
func FormatReply(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.ReplaceAll(s, "*", "• ")
}
