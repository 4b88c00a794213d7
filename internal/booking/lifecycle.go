package booking

import (
	"math"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/vehicle"
)

// 日均价高于该阈值的租约在转正时加收 5% 附加费。
const surchargeDailyThreshold = 50.0

// CanBook 判断车辆当前可用性是否允许下单。
// maintenance 车辆允许预订但保持其可用性不变。
func CanBook(av vehicle.Availability) bool {
	return av == vehicle.AvailabilityAvailable || av == vehicle.AvailabilityMaintenance
}

// AvailabilityAfterCreate 下单后车辆应处的可用性。
func AvailabilityAfterCreate(av vehicle.Availability) vehicle.Availability {
	if av == vehicle.AvailabilityAvailable {
		return vehicle.AvailabilityUnavailable
	}
	return av
}

// RentalDays 计算租期天数，不足一天按一天计。
func RentalDays(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// ApplySurcharge 转正计价：日均价超过阈值时一次性加收 5%。
func ApplySurcharge(price float64, days int) float64 {
	if days <= 0 {
		return price
	}
	if price/float64(days) > surchargeDailyThreshold {
		return price * 1.05
	}
	return price
}
