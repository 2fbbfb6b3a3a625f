// Fichier: dns/resolver.go

package dns

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/miekg/dns"

	"project/ip-filter/ipaddr"
)

const defaultTimeout = 5 * time.Second

// Resolver performs reverse (PTR) lookups with bounded concurrency.
type Resolver struct {
	client     *dns.Client
	nameserver string
	logger     *slog.Logger
	// lookupTracker records every address a PTR query was sent for.
	lookupTracker map[ipaddr.Address]struct{}
	// Mutex to protect concurrent access to lookupTracker.
	mu sync.Mutex
	// Semaphore to limit concurrent goroutines for DNS lookups.
	semaphore chan struct{}
}

// NewResolver creates a new Resolver instance querying nameserver (host:port).
func NewResolver(nameserver string, concurrencyLimit int, timeout time.Duration, logger *slog.Logger) *Resolver {
	if concurrencyLimit < 1 {
		concurrencyLimit = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		client:        &dns.Client{Timeout: timeout},
		nameserver:    nameserver,
		logger:        logger,
		lookupTracker: make(map[ipaddr.Address]struct{}),
		semaphore:     make(chan struct{}, concurrencyLimit),
	}
}

// GetLookupCount safely returns the current number of unique lookups tracked.
func (r *Resolver) GetLookupCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lookupTracker)
}

// LookupPTR returns the first PTR name published for a. An NXDOMAIN answer or
// an answer without PTR records yields "" and no error.
func (r *Resolver) LookupPTR(ctx context.Context, a ipaddr.Address) (string, error) {
	r.mu.Lock()
	r.lookupTracker[a] = struct{}{}
	r.mu.Unlock()

	name, err := dns.ReverseAddr(a.String())
	if err != nil {
		return "", fmt.Errorf("reverse name for %s: %w", a, err)
	}

	m := new(dns.Msg)
	m.SetQuestion(name, dns.TypePTR)
	m.RecursionDesired = true

	resp, _, err := r.client.ExchangeContext(ctx, m, r.nameserver)
	if err != nil {
		return "", fmt.Errorf("DNS query error for %s (PTR): %w", a, err)
	}
	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return "", nil
	default:
		return "", fmt.Errorf("DNS response failed for %s (PTR). Rcode: %s", a, dns.RcodeToString[resp.Rcode])
	}

	for _, ans := range resp.Answer {
		if ptr, ok := ans.(*dns.PTR); ok {
			return ptr.Ptr, nil
		}
	}
	return "", nil
}

// LookupAll resolves every distinct address in addrs concurrently. Failed
// lookups are logged and left out of the returned map.
func (r *Resolver) LookupAll(ctx context.Context, addrs ipaddr.Collection) map[ipaddr.Address]string {
	names := make(map[ipaddr.Address]string)
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[ipaddr.Address]struct{}, len(addrs))
	)

	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}

		select {
		case r.semaphore <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return names
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-r.semaphore }()

			name, err := r.LookupPTR(ctx, a)
			if err != nil {
				r.logger.Warn("PTR lookup failed", "address", a.String(), "error", err)
				return
			}
			if name == "" {
				return
			}
			mu.Lock()
			names[a] = name
			mu.Unlock()
		}()
	}
	wg.Wait()

	r.logger.Debug("PTR lookups done", "addresses", len(seen), "resolved", len(names))
	return names
}
