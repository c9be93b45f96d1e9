package rental

import (
	"os"
	"testing"

	"shelfspace/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = config.Config{
		AdminGateEnabled:      false,
		MaxPlatformCommission: 0.30,
		PlatformCommission:    0.09,
		StoreOwnerCommission:  0.10,
		SalesTaxRate:          0,
		PendingExpiryHours:    168,
		PaymentExpiryHours:    72,
	}
	os.Exit(m.Run())
}
