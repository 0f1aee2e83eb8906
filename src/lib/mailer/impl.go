package mailer

import (
	"log"
	"sync"
	"vetcare/src/lib"
)

// Outbound mail is decoupled from the request path: messages go onto an
// in-process queue drained by a single worker, so delivery failures can never
// roll back or block a committed status transition.

var (
	queue    chan *lib.SendMailInput
	initOnce sync.Once
)

func Start() {
	initOnce.Do(func() {
		queue = make(chan *lib.SendMailInput, 256)
		go func() {
			for input := range queue {
				if err := lib.SendMail(input); err != nil {
					log.Printf("[mailer] Error sending message: %s\n", err.Error())
				}
			}
		}()
	})
}

// NewMailerMessage enqueues a message for delivery. It never blocks; when the
// queue is saturated or the worker was not started the message is dropped and
// logged.
func NewMailerMessage(input *lib.SendMailInput) error {
	if queue == nil {
		log.Printf("[mailer] queue not started, dropping message to %v\n", input.To)
		return nil
	}
	select {
	case queue <- input:
	default:
		log.Printf("[mailer] queue full, dropping message to %v\n", input.To)
	}
	return nil
}
