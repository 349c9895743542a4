// Package telegram is the bot frontend: essay text in a message becomes a
// free-essay correction, a photo becomes a transcription. Engine choice is
// per chat via /engine.
package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"essay-proxy/api/internal/engine"
	"essay-proxy/api/internal/prompt"
	"essay-proxy/api/internal/store"
	"essay-proxy/api/internal/util"
)

// Telegram caps messages at 4096 chars; stay under it with some headroom.
const replyLimit = 3900

type Engines struct {
	Claude engine.Engine
	Gemini engine.Engine
}

type Router struct {
	Bot         *tgbotapi.BotAPI
	EngManager  *engine.Manager
	Corrections *store.CorrectionRepo // nil disables the cache

	MaxTokens    int
	OCRMaxTokens int
}

func (r *Router) HandleUpdate(upd tgbotapi.Update, engines Engines) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd, engines)
		return
	}

	if len(upd.Message.Photo) > 0 {
		r.handlePhoto(cid, upd.Message.Photo)
		return
	}

	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.handleEssay(cid, text)
		return
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update, engines Engines) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "英作文を送ると添削します。図表問題の写真を送ると書き起こします。\nコマンド: /engine, /levels, /health")
	case "health":
		r.send(cid, "✅ OK")
	case "levels":
		r.send(cid, levelList())
	case "engine":
		r.switchEngine(cid, upd.Message.Text, engines)
	default:
		r.send(cid, "不明なコマンドです")
	}
}

func (r *Router) switchEngine(cid int64, text string, engines Engines) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(text, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(cid)
		r.send(cid, fmt.Sprintf("現在のエンジン: %s (%s)\n使い方:\n/engine claude\n/engine gemini", cur.Name(), cur.GetModel()))
		return
	}
	switch strings.ToLower(args[0]) {
	case "claude":
		r.EngManager.Set(cid, engines.Claude)
		r.send(cid, "✅ エンジン: claude")
	case "gemini":
		r.EngManager.Set(cid, engines.Gemini)
		r.send(cid, "✅ エンジン: gemini")
	default:
		r.send(cid, "不明なエンジンです。claude | gemini から選んでください。")
	}
}

func levelList() string {
	var b strings.Builder
	b.WriteString("参考解答例のレベル:\n")
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		if def, ok := prompt.LookupLevel(id); ok {
			b.WriteString("- " + def.Label + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Router) send(chatID int64, text string) {
	_, _ = r.Bot.Send(tgbotapi.NewMessage(chatID, text))
}

// reply sends text split into Telegram-sized chunks.
func (r *Router) reply(chatID int64, text string) {
	for _, part := range util.SplitMessage(text, replyLimit) {
		r.send(chatID, part)
	}
}

func (r *Router) sendError(chatID int64, msg string) {
	r.send(chatID, "⚠️ "+msg)
}
