// Package notifier delivers the availability summary for a run.
//
// TelegramNotifier posts exactly one message per call; DryRunNotifier prints the
// message it would have sent.
package notifier
