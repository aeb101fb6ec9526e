package main

// @title           Emceep Event Manager API
// @version         1.0
// @description     API REST e MCP para gerenciar agenda, participantes e FAQ de um evento

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
