package config

import (
	"fmt"
)

// GRPCConfig конфигурация gRPC сервера проверки здоровья.
type GRPCConfig struct {
	Enabled bool   `yaml:"enabled" env:"BLOG_GRPC_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"BLOG_GRPC_HOST" env-default:"0.0.0.0"`
	Port    int    `yaml:"port" env:"BLOG_GRPC_PORT" env-default:"50051"`
}

// GetAddress возвращает адрес gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
