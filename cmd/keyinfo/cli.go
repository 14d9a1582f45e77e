package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Scan ScanCmd `cmd:"" help:"Extract key information from a PDF file"`
	ASX  ASXCmd  `cmd:"" name:"asx" help:"Scan today's ASX announcements for key information"`
}

// PatternFlags are shared by commands that classify text.
type PatternFlags struct {
	Patterns string `short:"P" type:"existingfile" help:"JSON file with a custom pattern table"`
	Backend  string `short:"b" default:"native" enum:"native,pdftotext" help:"Text extraction backend (native, pdftotext)"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	PatternFlags `embed:""`

	Path   string `arg:"" help:"Path to the PDF file"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text, json)"`
}

// ASXCmd is the "asx" subcommand.
type ASXCmd struct {
	PatternFlags `embed:""`

	PriceSensitive bool          `short:"s" help:"Process only price sensitive announcements"`
	Previous       bool          `short:"p" help:"Scrape the previous business day's announcements"`
	Tickers        []string      `short:"t" sep:"," help:"Always report these tickers, even without matches"`
	Concurrency    int           `short:"c" default:"10" help:"Concurrent download limit"`
	Timeout        time.Duration `default:"60s" help:"HTTP timeout per request"`

	SMTPServer string `name:"smtp-server" default:"smtp.gmail.com" env:"KEYINFO_SMTP_SERVER" help:"SMTP server address"`
	SMTPPort   int    `name:"smtp-port" default:"587" env:"KEYINFO_SMTP_PORT" help:"SMTP server port"`
	SMTPUser   string `name:"smtp-user" env:"KEYINFO_SMTP_USER" help:"SMTP username (email address)"`
	SMTPPass   string `name:"smtp-pass" env:"KEYINFO_SMTP_PASS" help:"SMTP password or app password"`
	ToEmail    string `name:"to-email" env:"KEYINFO_TO_EMAIL" help:"Recipient email address"`
	FromEmail  string `name:"from-email" env:"KEYINFO_FROM_EMAIL" help:"Sender email address (default: smtp-user)"`
}
