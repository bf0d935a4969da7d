package globals

import (
	"os"
)

var JwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "dev-only-secret"
}

// Context keys
type ContextKey string

const MerchantIDKey ContextKey = "merchantId"
const StoreIDKey ContextKey = "storeId"
