package reminders

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	sdomain "cinebook/internal/domain/shows"
	udomain "cinebook/internal/domain/users"
)

type ShowsRepo interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]sdomain.Upcoming, error)
}

type UsersRepo interface {
	GetUsersByIDs(ctx context.Context, ids []string) ([]udomain.User, error)
}

type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Summary aggregates a sweep's independent send outcomes.
type Summary struct {
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Message string `json:"message"`
}

type task struct {
	user      udomain.User
	title     string
	startTime time.Time
}

// SweepUsecase sends one reminder per (user, show) pair for shows starting
// one sweep interval from now. The window is exactly as wide as the sweep
// period steps forward, so each show is caught by exactly one sweep.
type SweepUsecase struct {
	showsRepo ShowsRepo
	usersRepo UsersRepo
	mail      MailSender
	lookAhead time.Duration
	window    time.Duration
	now       func() time.Time
}

func NewSweepUsecase(
	showsRepo ShowsRepo,
	usersRepo UsersRepo,
	mail MailSender,
	lookAhead time.Duration,
	window time.Duration,
) *SweepUsecase {
	return &SweepUsecase{
		showsRepo: showsRepo,
		usersRepo: usersRepo,
		mail:      mail,
		lookAhead: lookAhead,
		window:    window,
		now:       time.Now,
	}
}

func (u *SweepUsecase) Run(ctx context.Context) (Summary, error) {
	from := u.now().Add(u.lookAhead)
	to := from.Add(u.window)

	tasks, err := u.collectTasks(ctx, from, to)
	if err != nil {
		return Summary{}, err
	}

	if len(tasks) == 0 {
		return Summary{Message: "no upcoming shows to remind"}, nil
	}

	var sent, failed atomic.Int64
	var wg sync.WaitGroup

	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()

			err := u.mail.Send(ctx, t.user.Email,
				fmt.Sprintf("Reminder: %q starts soon!", t.title),
				reminderBody(t.user.Name, t.title, t.startTime),
			)
			if err != nil {
				log.FromContext(ctx).
					WithField("email", t.user.Email).
					WithField("error", err).
					Error("Failed to send reminder")
				failed.Add(1)
				return
			}
			sent.Add(1)
		}(t)
	}
	wg.Wait()

	return Summary{
		Sent:    int(sent.Load()),
		Failed:  int(failed.Load()),
		Message: fmt.Sprintf("sent %d reminders, %d failed", sent.Load(), failed.Load()),
	}, nil
}

func (u *SweepUsecase) collectTasks(ctx context.Context, from, to time.Time) ([]task, error) {
	upcoming, err := u.showsRepo.ListStartingBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shows: %w", err)
	}

	var tasks []task
	for _, up := range upcoming {
		if !up.HasMovie || len(up.Show.OccupiedSeats) == 0 {
			continue
		}

		users, err := u.usersRepo.GetUsersByIDs(ctx, up.Show.OccupantIDs())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve seat holders: %w", err)
		}

		for _, user := range users {
			tasks = append(tasks, task{
				user:      user,
				title:     up.MovieTitle,
				startTime: up.Show.StartTime,
			})
		}
	}

	return tasks, nil
}

func reminderBody(name, title string, startTime time.Time) string {
	return fmt.Sprintf(`
	<h2>Your movie starts soon!</h2>
	<p>Hi %s,</p>
	<p>This is a reminder that <strong>%s</strong> starts at %s.</p>
	<p>Enjoy the show!</p>
	`, name, title, startTime.Format("Mon, 02 Jan 2006 15:04"))
}
