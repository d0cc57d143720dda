// Package reminder evaluates reminder thresholds on a schedule and after each
// recorded answer, and hands changed results to a Notifier. Delivering the
// reminder (push notification, widget refresh) belongs to the host.
package reminder
