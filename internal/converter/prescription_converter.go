package converter

import (
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		PrescriptionID: prescription.PrescriptionID,
		PrID:           prescription.PrID,
		UserID:         prescription.UserID,
		PatientName:    prescription.PatientName,
		Mobile:         prescription.Mobile,
		Address:        prescription.Address,
		City:           prescription.City,
		NearBy:         prescription.NearBy,
		Images:         prescription.Images,
		Status:         string(prescription.Status),
		CreatedAt:      prescription.CreatedAt,
		UpdatedAt:      prescription.UpdatedAt,
	}

	// Include doctor info if preloaded
	if prescription.Doctor.ID != 0 {
		response.Doctor = &dto.DoctorBriefResponse{
			ID:        prescription.Doctor.ID,
			Firstname: prescription.Doctor.Firstname,
			Lastname:  prescription.Doctor.Lastname,
			Mobile:    prescription.Doctor.Mobile,
		}
	}

	if prescription.Bill != nil {
		response.Bill = BillToResponse(prescription.Bill)
	}

	if prescription.DeliveryBoy != nil {
		response.DeliveryBoy = DeliveryBoyToResponse(prescription.DeliveryBoy)
	}

	return response
}

// PrescriptionsToResponses converts a slice of Prescription entities to DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// BillToResponse converts a Bill entity to BillResponse DTO
func BillToResponse(bill *entity.Bill) *dto.BillResponse {
	if bill == nil {
		return nil
	}

	return &dto.BillResponse{
		BillID:         bill.BillID,
		PrescriptionID: bill.PrescriptionID,
		BillNumber:     bill.BillNumber,
		TotalBill:      bill.TotalBill,
		Bills:          bill.Bills,
		CreatedAt:      bill.CreatedAt,
		UpdatedAt:      bill.UpdatedAt,
	}
}

// StatusCountsToResponses flattens the count map into the fixed catalog order
func StatusCountsToResponses(counts map[entity.PrescriptionStatus]int64) []dto.StatusCountResponse {
	responses := make([]dto.StatusCountResponse, 0, len(entity.AllPrescriptionStatuses))
	for _, status := range entity.AllPrescriptionStatuses {
		responses = append(responses, dto.StatusCountResponse{
			Status: string(status),
			Count:  counts[status],
		})
	}
	return responses
}
