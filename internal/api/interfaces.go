package api

import (
	"context"

	"github.com/neexbeast/explorex/internal/catalog"
	"github.com/neexbeast/explorex/internal/contact"
	"github.com/neexbeast/explorex/internal/listing"
)

// ListingCache defines the cache operations needed by handlers.
// Get methods return nil, nil on a miss.
type ListingCache interface {
	GetDestinations(ctx context.Context, q listing.Query) (*listing.Page[catalog.Destination], error)
	SetDestinations(ctx context.Context, q listing.Query, page *listing.Page[catalog.Destination]) error
	GetAgencies(ctx context.Context, q listing.Query) (*listing.Page[catalog.Agency], error)
	SetAgencies(ctx context.Context, q listing.Query, page *listing.Page[catalog.Agency]) error
	Flush(ctx context.Context) (int, error)
}

// ContactSubmitter delivers contact-form messages.
type ContactSubmitter interface {
	Submit(ctx context.Context, msg contact.Message) (*contact.Receipt, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
