package controllers

import (
	"github.com/rs/zerolog"

	"civicreport-be/notify"
	"civicreport-be/realtime"
)

var (
	hub    *realtime.Hub
	mailer *notify.EmailDispatcher
	sink   notify.NotificationSink
	ledger *notify.Ledger
	logger zerolog.Logger
)

// Init wires the notification channels into the handlers. Called once
// from main before the router starts serving.
func Init(h *realtime.Hub, m *notify.EmailDispatcher, s notify.NotificationSink, l *notify.Ledger, log zerolog.Logger) {
	hub = h
	mailer = m
	sink = s
	ledger = l
	logger = log
}
