package services

// Messages returned to API callers. Clients match on them, keep them stable.
const (
	MsgCompanyNotFound      = "Company not found."
	MsgCompanyNameTaken     = "Company with the same name already exists."
	MsgCompanyNameTakenByID = "Another company with the same name already exists."
	MsgStoreNotFound        = "Store not found."
	MsgStoreNameTaken       = "Store with the same name already exists."
)
