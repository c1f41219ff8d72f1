package models

// AppData adalah satu objek data aplikasi yang dipakai bersama oleh layar kasir dan antrian.
// Setiap perubahan mengganti objek (atau field Transactions) secara utuh.
type AppData struct {
	Menu         []CatalogItem `json:"menu"`
	Toppings     []CatalogItem `json:"toppings"`
	Drinks       []CatalogItem `json:"drinks"`
	Transactions []Order       `json:"transactions"`
}

func cloneCatalog(in []CatalogItem) []CatalogItem {
	out := make([]CatalogItem, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func (d AppData) Clone() AppData {
	return AppData{
		Menu:         cloneCatalog(d.Menu),
		Toppings:     cloneCatalog(d.Toppings),
		Drinks:       cloneCatalog(d.Drinks),
		Transactions: CloneOrders(d.Transactions),
	}
}

// CatalogItems menggabungkan seluruh katalog dalam urutan menu, topping, minuman
func (d AppData) CatalogItems() []CatalogItem {
	all := make([]CatalogItem, 0, len(d.Menu)+len(d.Toppings)+len(d.Drinks))
	all = append(all, d.Menu...)
	all = append(all, d.Toppings...)
	all = append(all, d.Drinks...)
	return all
}
