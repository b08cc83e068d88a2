package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/discordpkg/gatewaykit"
)

// logPayloads logs every dispatched context once the rest of the chain is done
// with it.
func logPayloads(logger logrus.FieldLogger) gatewaykit.Handler {
	return func(ctx *gatewaykit.Context, next gatewaykit.Next) error {
		start := time.Now()
		err := next()

		entry := logger.WithField("latency", time.Since(start))
		if ctx.IsClose() {
			entry.WithFields(logrus.Fields{
				"code":   uint16(ctx.Close.Code),
				"name":   ctx.Close.Name,
				"reason": ctx.Close.Reason,
			}).Warn("connection closed")
			return err
		}

		entry = entry.WithField("op", ctx.Payload.Op.String())
		if ctx.Payload.EventName != "" {
			entry = entry.WithFields(logrus.Fields{
				"event": ctx.Payload.EventName,
				"seq":   ctx.Payload.Seq,
			})
		}

		if err != nil {
			entry.WithError(err).Error("dispatch failed")
		} else {
			entry.Info("payload")
		}
		return err
	}
}
