package main

import (
	"flag"
	"github.com/shopfront/shopfront-api/internal/config"
	"log"
	"os"
)

func main() {
	path := flag.String("config", "ecommerce-config.json", "shared configuration document")
	root := flag.String("root", ".", "project root the env files are written under")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open config: %v", err)
	}
	defer f.Close()

	doc, err := config.ReadDocument(f)
	if err != nil {
		log.Fatalf("%v", err)
	}
	written, err := config.WriteEnvFiles(*root, doc)
	if err != nil {
		log.Fatalf("write env files: %v", err)
	}
	for _, p := range written {
		log.Printf("wrote %s", p)
	}
}
