// Package telegram sends ticket availability notifications through the Telegram Bot API.
//
// The client posts HTML-formatted messages to the sendMessage endpoint using plain
// HTTP requests. Authentication requires a bot token (from @BotFather) and the
// destination chat ID.
package telegram
