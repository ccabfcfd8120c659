package memory

import (
	"context"
	"strconv"
	"time"

	"ai-helpdesk-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// DirectoryCache holds the per-tenant project-name → scope mapping consulted
// by the scope resolver. The directory is refreshed from the tenant store at
// most once per TTL; a concurrent refresh race is last-writer-wins.
type DirectoryCache struct {
	tenantRepo contract.TenantRepository
	cache      *cache.Cache
}

func NewDirectoryCache(tenantRepo contract.TenantRepository, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{
		tenantRepo: tenantRepo,
		cache:      cache.New(ttl, 1*time.Hour),
	}
}

// Snapshot returns the current name→scope map for a tenant, loading it on
// first use or after expiry.
func (d *DirectoryCache) Snapshot(ctx context.Context, businessId uint) (map[string]string, error) {
	key := strconv.FormatUint(uint64(businessId), 10)

	if x, found := d.cache.Get(key); found {
		return x.(map[string]string), nil
	}

	projects, err := d.tenantRepo.ListProjects(ctx, businessId)
	if err != nil {
		return nil, err
	}

	directory := make(map[string]string, len(projects))
	for _, p := range projects {
		name := p.DocName
		if name == "" {
			name = p.DocId
		}
		directory[name] = p.DocId
	}

	d.cache.Set(key, directory, cache.DefaultExpiration)
	return directory, nil
}

// Invalidate drops a tenant's snapshot so the next Snapshot reloads.
func (d *DirectoryCache) Invalidate(businessId uint) {
	d.cache.Delete(strconv.FormatUint(uint64(businessId), 10))
}
