package domain

// Group is a chat where the bot holds administrator rank
type Group struct {
	ID   int64
	Name string
}

// Category groups photos; Name is both the key and the caption prefix
type Category struct {
	Name        string
	Description string
}

// Photo represents a catalogued assembly photo
type Photo struct {
	ID                  int
	PhotoID             string
	Description         string
	DescriptionTranslit string
	Category            string
}

// PageSize is the number of photos per category page
const PageSize = 6

// Page is one page of a category listing
type Page struct {
	Category   string
	Photos     []Photo
	Number     int
	TotalPages int
}

// TotalPages returns ceil(total / PageSize)
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage keeps page within [1, max(1, totalPages)]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Offset returns the row offset of page; never negative
func Offset(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * PageSize
}

// NoDescription is shown for photos missing from the catalog
const NoDescription = "Описания нет, пожалуйста, обратитесь к администратору."

// MaxSearchResults caps a description search
const MaxSearchResults = 10
