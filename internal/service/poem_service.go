package service

import (
    "regexp"
    "sort"
    "strconv"
    "strings"

    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/repository"
)

type PoemService struct {
    PoemRepo repository.PoemRepositoryInterface
}

// TreeNode is one entry of the sidebar navigation tree.
type TreeNode struct {
    ID       string     `json:"id"`
    Label    string     `json:"label"`
    Type     string     `json:"type"` // folder, poem
    Children []TreeNode `json:"children,omitempty"`
    Slug     string     `json:"slug,omitempty"`
    Count    int        `json:"count,omitempty"`
}

// Title patterns that group poems into named series.
var seriesPatterns = []struct {
    rx   *regexp.Regexp
    name string
}{
    {regexp.MustCompile(`(?i)^Diary of a Programmer`), "Diary of a Programmer"},
    {regexp.MustCompile(`(?i)^Moon (Over|Poem|Meditation)`), "Moon Poems"},
    {regexp.MustCompile(`(?i)^Sun Over`), "Sun Poems"},
}

func (s *PoemService) ListPublished() ([]model.Poem, error) {
    return s.PoemRepo.ListPublished()
}

// Search matches the query against title and content, case-insensitively.
func (s *PoemService) Search(query string) ([]model.Poem, error) {
    poems, err := s.PoemRepo.ListPublished()
    if err != nil {
        return nil, err
    }
    q := strings.ToLower(query)
    matched := []model.Poem{}
    for _, p := range poems {
        if strings.Contains(strings.ToLower(p.Title), q) ||
            strings.Contains(strings.ToLower(p.Content), q) {
            matched = append(matched, p)
        }
    }
    return matched, nil
}

// GetWithNeighbors returns a poem and its previous/next siblings in
// publication order, for reader navigation.
func (s *PoemService) GetWithNeighbors(slug string) (*model.Poem, *model.Poem, *model.Poem, error) {
    poems, err := s.PoemRepo.ListPublished()
    if err != nil {
        return nil, nil, nil, err
    }
    for i := range poems {
        if poems[i].Slug != slug {
            continue
        }
        var prev, next *model.Poem
        if i > 0 {
            prev = &poems[i-1]
        }
        if i < len(poems)-1 {
            next = &poems[i+1]
        }
        return &poems[i], prev, next, nil
    }

    // not in the published list; fall back to the repo for a proper error
    p, err := s.PoemRepo.GetBySlug(slug)
    if err != nil {
        return nil, nil, nil, err
    }
    return p, nil, nil, nil
}

// BuildTree assembles the navigation tree: the ten most recent poems,
// detected series, a by-year grouping and the full A-Z list.
func (s *PoemService) BuildTree() ([]TreeNode, error) {
    poems, err := s.PoemRepo.ListPublished()
    if err != nil {
        return nil, err
    }

    tree := []TreeNode{}

    recent := poems
    if len(recent) > 10 {
        recent = recent[:10]
    }
    tree = append(tree, TreeNode{
        ID:       "recent",
        Label:    "Recent",
        Type:     "folder",
        Count:    len(recent),
        Children: poemLeaves(recent),
    })

    if seriesNode := buildSeriesNode(poems); seriesNode != nil {
        tree = append(tree, *seriesNode)
    }

    tree = append(tree, buildYearsNode(poems))

    all := make([]model.Poem, len(poems))
    copy(all, poems)
    sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
    tree = append(tree, TreeNode{
        ID:       "all",
        Label:    "All Poems",
        Type:     "folder",
        Count:    len(all),
        Children: poemLeaves(all),
    })

    return tree, nil
}

func poemLeaves(poems []model.Poem) []TreeNode {
    leaves := make([]TreeNode, 0, len(poems))
    for _, p := range poems {
        leaves = append(leaves, TreeNode{ID: p.ID, Label: p.Title, Type: "poem", Slug: p.Slug})
    }
    return leaves
}

func buildSeriesNode(poems []model.Poem) *TreeNode {
    series := map[string][]model.Poem{}
    order := []string{}
    for _, p := range poems {
        for _, pattern := range seriesPatterns {
            if pattern.rx.MatchString(p.Title) {
                if _, ok := series[pattern.name]; !ok {
                    order = append(order, pattern.name)
                }
                series[pattern.name] = append(series[pattern.name], p)
                break
            }
        }
    }
    if len(series) == 0 {
        return nil
    }

    node := &TreeNode{ID: "series", Label: "Series", Type: "folder"}
    for _, name := range order {
        node.Children = append(node.Children, TreeNode{
            ID:       "series-" + name,
            Label:    name,
            Type:     "folder",
            Count:    len(series[name]),
            Children: poemLeaves(series[name]),
        })
    }
    return node
}

func buildYearsNode(poems []model.Poem) TreeNode {
    years := map[string][]model.Poem{}
    for _, p := range poems {
        year := strconv.Itoa(p.PublishedAt.Year())
        years[year] = append(years[year], p)
    }

    sorted := make([]string, 0, len(years))
    for year := range years {
        sorted = append(sorted, year)
    }
    sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

    node := TreeNode{ID: "years", Label: "By Year", Type: "folder"}
    for _, year := range sorted {
        node.Children = append(node.Children, TreeNode{
            ID:       "year-" + year,
            Label:    year,
            Type:     "folder",
            Count:    len(years[year]),
            Children: poemLeaves(years[year]),
        })
    }
    return node
}
