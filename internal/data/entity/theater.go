package entity

type Theater struct {
	BaseSimple
	Name     string `db:"name"`
	Location string `db:"location"`
	City     string `db:"city"`
	Address  string `db:"address"`
	Phone    string `db:"phone"`
	ImageURL string `db:"image_url"`
}
