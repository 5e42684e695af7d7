package transport

import "github.com/icehockey/core/adapter"

// UIAdapter and AudioAdapter are the tick loop's outbound UI/Audio
// adapters (spec 6): both simply broadcast to every connected client,
// since this demo transport has no concept of team-scoped or
// spectator-scoped delivery.
type UIAdapter struct{ server *Server }
type AudioAdapter struct{ server *Server }

// UI returns the adapter.UI the tick loop's Core should hold.
func (s *Server) UI() adapter.UI { return UIAdapter{server: s} }

// Audio returns the adapter.Audio the tick loop's Core should hold.
func (s *Server) Audio() adapter.Audio { return AudioAdapter{server: s} }

func (u UIAdapter) Publish(ev adapter.UIEvent) { u.server.Broadcast(uiEventMsg{ev: ev}) }

func (a AudioAdapter) Play(s adapter.Sound) { a.server.Broadcast(soundMsg{s: s}) }
