package domain

// Client клиент, найденный в 1С по номеру телефона
type Client struct {
	KontragentKey string // Ref_Key контрагента в 1С
	Name          string // ФИО (Фамилия Имя Отчество) либо Description
	LastName      string // Отдельно фамилия — используется при поиске автомобиля
	Email         string
}

// Vehicle автомобиль клиента, развёрнутый из справочников 1С
type Vehicle struct {
	Key      string // Ref_Key в Catalog_Автомобили, может быть пустым
	FullName string
	VIN      string
	Plate    string
	Year     string // Первые 4 символа года выпуска
	Brand    string
	Model    string
}

// IsEmpty сообщает, что об автомобиле ничего не известно
func (v *Vehicle) IsEmpty() bool {
	if v == nil {
		return true
	}
	return v.Key == "" && v.FullName == "" && v.VIN == "" && v.Plate == "" &&
		v.Brand == "" && v.Model == "" && v.Year == ""
}
