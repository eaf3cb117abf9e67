package repos

import (
	"encoding/json"

	"rewear/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `
  i.id, i.title, i.description, i.category_id, i.size, i.condition, i.points,
  i.tags_json, i.images_json, i.user_id, i.status, i.views,
  i.created_at, COALESCE(i.updated_at,'') AS updated_at`

// Browse sort keys, mirrored by the browse page's sort dropdown.
// Ties always break by creation time (newest first) then id for determinism.
var sortClauses = map[string]string{
	"newest":      `datetime(i.created_at) DESC, i.id`,
	"oldest":      `datetime(i.created_at) ASC, i.id`,
	"points-low":  `i.points ASC, datetime(i.created_at) DESC, i.id`,
	"points-high": `i.points DESC, datetime(i.created_at) DESC, i.id`,
	"popular":     `i.views DESC, datetime(i.created_at) DESC, i.id`,
}

func orderBy(sort string) string {
	if c, ok := sortClauses[sort]; ok {
		return c
	}
	return sortClauses["newest"]
}

func decodeItem(it *domain.Item) {
	if err := json.Unmarshal([]byte(it.TagsJSON), &it.Tags); err != nil {
		it.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(it.ImagesJSON), &it.Images); err != nil {
		it.Images = []string{}
	}
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `
	  SELECT `+itemCols+`, c.name AS category_name, p.name AS owner_name
	  FROM items i
	  JOIN categories c ON c.id = i.category_id
	  JOIN profiles p   ON p.id = i.user_id
	  WHERE i.id = ?
	`, id)
	if err != nil {
		return domain.Item{}, err
	}
	decodeItem(&it)
	return it, nil
}

// IncrementViews bumps the counter without touching updated_at.
func (r *ItemRepo) IncrementViews(id string) error {
	_, err := r.db.Exec(`UPDATE items SET views = views + 1 WHERE id = ?`, id)
	return err
}

// Search returns one page of active items matching the filters plus the total
// match count across all pages.
func (r *ItemRepo) Search(q, catID, sort string, limit, offset int) ([]domain.Item, int, error) {
	where := `i.status = 'active'`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(i.title) LIKE ? OR LOWER(i.description) LIKE ? OR LOWER(i.tags_json) LIKE ?)`
		pat := "%" + q + "%"
		args = append(args, pat, pat, pat)
	}
	if catID != "" {
		where += ` AND i.category_id = ?`
		args = append(args, catID)
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM items i WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `
	  SELECT ` + itemCols + `, c.name AS category_name, p.name AS owner_name
	  FROM items i
	  JOIN categories c ON c.id = i.category_id
	  JOIN profiles p   ON p.id = i.user_id
	  WHERE ` + where + `
	  ORDER BY ` + orderBy(sort) + `
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Item
	if err := r.db.Select(&out, query, args...); err != nil {
		return nil, 0, err
	}
	for i := range out {
		decodeItem(&out[i])
	}
	return out, total, nil
}

func (r *ItemRepo) ListByUser(userID string) ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+`, c.name AS category_name, p.name AS owner_name
	  FROM items i
	  JOIN categories c ON c.id = i.category_id
	  JOIN profiles p   ON p.id = i.user_id
	  WHERE i.user_id = ?
	  ORDER BY datetime(i.created_at) DESC, i.id
	`, userID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItem(&out[i])
	}
	return out, nil
}

// ListAll returns every item regardless of status (admin view).
func (r *ItemRepo) ListAll() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+`, c.name AS category_name, p.name AS owner_name
	  FROM items i
	  JOIN categories c ON c.id = i.category_id
	  JOIN profiles p   ON p.id = i.user_id
	  ORDER BY datetime(i.created_at) DESC, i.id
	`)
	if err != nil {
		return nil, err
	}
	for i := range out {
		decodeItem(&out[i])
	}
	return out, nil
}

func (r *ItemRepo) Create(it *domain.Item) error {
	tags, _ := json.Marshal(it.Tags)
	images, _ := json.Marshal(it.Images)
	_, err := r.db.Exec(`
	  INSERT INTO items(id,title,description,category_id,size,condition,points,tags_json,images_json,user_id,status)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)
	`, it.ID, it.Title, it.Description, it.CategoryID, it.Size, it.Condition, it.Points,
		string(tags), string(images), it.UserID, it.Status)
	return err
}

func (r *ItemRepo) Update(it *domain.Item) error {
	tags, _ := json.Marshal(it.Tags)
	images, _ := json.Marshal(it.Images)
	_, err := r.db.Exec(`
	  UPDATE items
	  SET title=?, description=?, category_id=?, size=?, condition=?, points=?,
	      tags_json=?, images_json=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, it.Title, it.Description, it.CategoryID, it.Size, it.Condition, it.Points,
		string(tags), string(images), it.ID)
	return err
}

func (r *ItemRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM items WHERE id=?`, id)
	return err
}

// SetStatusIf flips status only when the current status matches; returns
// whether a row changed. This is the optimistic guard for moderation and
// the redeem/accept flows.
func (r *ItemRepo) SetStatusIf(id, from, to string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE items SET status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=? AND status=?
	`, to, id, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
