package model

// Province, District e Neighborhood são dados de referência somente leitura,
// populados pelas migrações de seed.

type Province struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" gorm:"size:100;not null"`
}

func (Province) TableName() string { return "provinces" }

type District struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name       string `json:"name" gorm:"size:100;not null"`
	ProvinceID int    `json:"provinceId" gorm:"index;not null"`
}

func (District) TableName() string { return "districts" }

type Neighborhood struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name       string `json:"name" gorm:"size:150;not null"`
	DistrictID int    `json:"districtId" gorm:"index;not null"`
}

func (Neighborhood) TableName() string { return "neighborhoods" }
