package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Starred StarredConfig
	Events  EventsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalogConfig()
	if err != nil {
		return nil, err
	}

	starred, err := loadStarredConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Catalog: catalog, Starred: starred, Events: events}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// CatalogConfig 描述餐厅目录的数据来源。
// File 与 DSN 都为空时使用内置目录。
type CatalogConfig struct {
	File  string
	DSN   string
	Watch bool
}

// Source 返回目录来源的简短描述。
func (c CatalogConfig) Source() string {
	switch {
	case c.DSN != "":
		return "sqlite"
	case c.File != "":
		return "file"
	default:
		return "builtin"
	}
}

func loadCatalogConfig() (CatalogConfig, error) {
	file := strings.TrimSpace(os.Getenv("CATALOG_FILE"))
	dsn := strings.TrimSpace(os.Getenv("CATALOG_DSN"))

	watch, err := parseBoolEnv("CATALOG_WATCH", file != "")
	if err != nil {
		return CatalogConfig{}, err
	}
	if watch && file == "" {
		return CatalogConfig{}, fmt.Errorf("CATALOG_WATCH requires CATALOG_FILE")
	}

	return CatalogConfig{File: file, DSN: dsn, Watch: watch}, nil
}

// StarredConfig 描述收藏列表的初始化方式。
type StarredConfig struct {
	Seed bool
}

func loadStarredConfig() (StarredConfig, error) {
	seed, err := parseBoolEnv("STARRED_SEED", true)
	if err != nil {
		return StarredConfig{}, err
	}
	return StarredConfig{Seed: seed}, nil
}

// EventsConfig 描述变更事件推送配置。
type EventsConfig struct {
	Buffer int
}

func loadEventsConfig() (EventsConfig, error) {
	buffer := 16
	if override, err := parseOptionalIntEnv("EVENTS_BUFFER"); err != nil {
		return EventsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			buffer = 1
		} else {
			buffer = *override
		}
	}
	return EventsConfig{Buffer: buffer}, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
