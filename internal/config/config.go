package config

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取 需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DbName            string `mapstructure:"POSTGRES_DB"`
	DbHost            string `mapstructure:"POSTGRES_HOST"`
	DbPort            string `mapstructure:"POSTGRES_PORT"`
	DbUser            string `mapstructure:"POSTGRES_USER"`
	DbPas             string `mapstructure:"POSTGRES_PASSWORD"`
	DbSSLMode         string `mapstructure:"POSTGRES_SSLMODE"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPas          string `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	OrderEventTopic   string `mapstructure:"ORDER_EVENT_TOPIC"`
	EventDBUrl        string `mapstructure:"EVENTDB_URL"`
	RazorpayKeyID     string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `mapstructure:"RAZORPAY_KEY_SECRET"`
	WebhookSecret     string `mapstructure:"RAZORPAY_WEBHOOK_SECRET"`
	MerchantName      string `mapstructure:"MERCHANT_NAME"`
	MerchantVPA       string `mapstructure:"MERCHANT_VPA"`
	Currency          string `mapstructure:"CURRENCY"`
	ThemeColor        string `mapstructure:"THEME_COLOR"`
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	if config_singleton == nil {
		muonce.Do(func() {
			config_singleton = &ConfigSingleTon{}
			if cf, err := loadConfig(); err == nil {
				config_singleton.Config = cf
			} else {
				log.Fatal("error read storefront config")
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					config_singleton.Config = cf
				} else {
					log.Panic("failed to reload config file")
				}
			})
		})
	}
}

/*
單純回傳錯誤  由外部決定要不要Fatal, 畢竟有可能有替代方案
*/
func loadConfig() (cf *Config, err error) {
	config_singleton.mu.Lock()
	defer config_singleton.mu.Unlock()

	cf = &Config{}
	viper.SetConfigFile(fmt.Sprintf("%s/.env", getProjectRoot("github.com/RoyceAzure/lab/storefront")))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}

	applyDefaults(cf)
	return
}

func applyDefaults(cf *Config) {
	if cf.Currency == "" {
		cf.Currency = "INR"
	}
	if cf.MerchantName == "" {
		cf.MerchantName = "Mrugaya Jewelry"
	}
	if cf.OrderEventTopic == "" {
		cf.OrderEventTopic = "storefront-order-events"
	}
}

func getProjectRoot(moduleName string) string {
	cmd := exec.Command("go", "list", "-m", "-f", "{{.Dir}}", moduleName)
	output, err := cmd.Output()
	if err != nil {
		return "."
	}
	return strings.TrimSpace(string(output))
}

// Brokers 把逗號分隔的broker設定拆成slice
func (c *Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.KafkaBrokers, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
