package util

type serviceConstants struct {
	Redis string
	Nats  string
}

var Services = serviceConstants{
	Redis: "redis",
	Nats:  "nats",
}

type transactionTypes struct {
	UPI           string
	Card          string
	International string
	Wallet        string
}

var TransactionTypes = transactionTypes{
	UPI:           "UPI",
	Card:          "Card",
	International: "International",
	Wallet:        "Wallet",
}

type verdicts struct {
	FraudVeryLikely string
	Suspicious      string
	Safe            string
}

var Verdicts = verdicts{
	FraudVeryLikely: "Fraud Very Likely",
	Suspicious:      "Suspicious, verify",
	Safe:            "Safe",
}

type components struct {
	Amount          string
	Time            string
	TransactionType string
	Interaction     string
}

var Components = components{
	Amount:          "Amount",
	Time:            "Time",
	TransactionType: "Transaction Type",
	Interaction:     "Interaction",
}
