package reporter

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"

	"teecha_backend/internals/configs"
)

var enabled bool

// Init configures Rollbar; without ROLLBAR_TOKEN reports only go to the log.
func Init() {
	token := configs.GetEnv("ROLLBAR_TOKEN")
	if token == "" {
		log.Println("[INFO] ROLLBAR_TOKEN empty, error reporting goes to log only")
		rollbar.SetEnabled(false)
		return
	}
	host, _ := os.Hostname()
	rollbar.SetToken(token)
	rollbar.SetEnvironment(configs.AppEnv)
	rollbar.SetServerHost(host)
	rollbar.SetCodeVersion(configs.GetEnv("APP_VERSION", "dev"))
	rollbar.SetEnabled(true)
	enabled = true
	log.Println("✅ Rollbar enabled")
}

// Error logs err and forwards it to Rollbar with request details.
func Error(err error, extras map[string]interface{}) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %v | %v", err, extras)
	if !enabled {
		return
	}
	if extras != nil {
		rollbar.Error(err, extras)
		return
	}
	rollbar.Error(err)
}

// Close flushes pending reports before shutdown.
func Close() {
	if enabled {
		rollbar.Close()
	}
}
