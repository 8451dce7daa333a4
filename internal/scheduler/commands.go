package scheduler

import "NepseSentinel/internal/notifier"

// HandleCommand maps one inbound chat command to a scheduler operation and
// returns the reply text. Unknown commands get the command list.
func (s *Scheduler) HandleCommand(chatID int64, command string) string {
	switch command {
	case "/start":
		if err := s.registry.Add(chatID); err != nil {
			s.log.Error().Err(err).Int64("chat_id", chatID).Msg("register subscriber")
		}
		return notifier.FormatWelcome()
	case "/help":
		return notifier.FormatWelcome()
	case "/monitor":
		if !s.Start() {
			return "Monitoring is already active."
		}
		return "Started monitoring NEPSE stocks. Use /stop to stop monitoring."
	case "/stop":
		if !s.Stop() {
			return "Monitoring is not active."
		}
		return "Stopped monitoring NEPSE stocks."
	case "/status":
		return notifier.FormatStatus(s.Status())
	case "/opportunities":
		return notifier.FormatOpportunitiesReply(s.RunOnce(s.root))
	default:
		return notifier.FormatWelcome()
	}
}
