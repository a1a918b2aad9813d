package main

import (
	// Import all microservice plugins to trigger their init() functions
	_ "github.com/rubiojr/msilog/pkg/microservices/msilog"
)
