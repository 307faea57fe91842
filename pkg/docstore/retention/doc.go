// Package retention prunes expired documents from the document store on a
// cron schedule.
package retention
