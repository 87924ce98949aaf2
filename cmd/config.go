package cmd

type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	RedisAddr        string
	InventoryBaseURL string
	BillingBaseURL   string
	IdentityBaseURL  string
	ExportBaseURL    string
}
