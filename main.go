package main

import (
	"github.com/CrossCheckCME/case_service/config"
	"github.com/CrossCheckCME/case_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
