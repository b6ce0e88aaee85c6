package config

import "fmt"

type Pagination struct {
	DefaultPageSize int `env:"PAGINATION_DEFAULT_PAGE_SIZE" envDefault:"25"`
	MaxPageSize     int `env:"PAGINATION_MAX_PAGE_SIZE" envDefault:"100"`
}

func (p Pagination) Validate() error {
	if p.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive: %d", p.DefaultPageSize)
	}
	if p.MaxPageSize < 1 {
		return fmt.Errorf("max page size must be positive: %d", p.MaxPageSize)
	}
	if p.DefaultPageSize > p.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d", p.DefaultPageSize, p.MaxPageSize)
	}
	return nil
}
